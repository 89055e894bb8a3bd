// internal/domain/models/recruiter.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultRecruiterImage = "https://www.shutterstock.com/image-vector/default-avatar-profile-icon-social-600nw-1677509740.jpg"
	DefaultCompanyLogo    = "https://via.placeholder.com/50"
	CompanyNotProvided    = "Company not provided"
)

// Job types accepted on a JobPost.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeInternship = "Internship"
	JobTypeContract   = "Contract"
)

// IsJobType reports whether s is one of the accepted job types.
func IsJobType(s string) bool {
	switch s {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract:
		return true
	}
	return false
}

// RecruiterProfile owns its job posts, which in turn own their applicants.
// Revision is incremented by every write to the document.
type RecruiterProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"userId"`
	FullName       string             `bson:"full_name" json:"fullName"`
	Email          string             `bson:"email" json:"email"`
	PhoneNumber    string             `bson:"phone_number" json:"phoneNumber"`
	CompanyName    string             `bson:"company_name" json:"companyName"`
	CompanyWebsite string             `bson:"company_website" json:"companyWebsite"`
	CompanyLogo    string             `bson:"company_logo" json:"companyLogo"`
	ProfileImage   string             `bson:"profile_image" json:"profileImage"`
	EmailVerified  bool               `bson:"email_verified" json:"emailVerified"`
	Revision       int64              `bson:"revision" json:"revision"`
	JobPosts       []JobPost          `bson:"job_posts" json:"jobPosts"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// JobPost returns the post with the given id.
func (p *RecruiterProfile) JobPost(id primitive.ObjectID) (*JobPost, bool) {
	for i := range p.JobPosts {
		if p.JobPosts[i].ID == id {
			return &p.JobPosts[i], true
		}
	}
	return nil, false
}

// DisplayCompany returns the company name to show for a post, falling back
// from the profile's company to the post's own company.
func (p *RecruiterProfile) DisplayCompany(j *JobPost) string {
	if p.CompanyName != "" {
		return p.CompanyName
	}
	if j != nil && j.CompanyName != "" {
		return j.CompanyName
	}
	return CompanyNotProvided
}

type JobPost struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	JobTitle       string             `bson:"job_title" json:"jobTitle"`
	CompanyName    string             `bson:"company_name" json:"companyName"`
	CompanyLogo    string             `bson:"company_logo" json:"companyLogo"`
	Salary         string             `bson:"salary" json:"salary"`
	Experience     string             `bson:"experience" json:"experience"`
	Location       string             `bson:"location" json:"location"`
	Description    string             `bson:"description" json:"description"`
	JobType        string             `bson:"job_type" json:"jobType"`
	Remote         bool               `bson:"remote" json:"remote"`
	Skills         []string           `bson:"skills" json:"skills"`
	RecruiterEmail string             `bson:"recruiter_email" json:"recruiterEmail"`
	Openings       int                `bson:"openings" json:"openings"`
	Applicants     []Applicant        `bson:"applicants" json:"applicants"`
	PostedAt       time.Time          `bson:"posted_at" json:"postedAt"`
}

// Applicant returns the application submitted by userID, if any.
func (j *JobPost) Applicant(userID primitive.ObjectID) (*Applicant, bool) {
	for i := range j.Applicants {
		if j.Applicants[i].UserID == userID {
			return &j.Applicants[i], true
		}
	}
	return nil, false
}

type Applicant struct {
	UserID            primitive.ObjectID `bson:"user_id" json:"userId"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Resume            string             `bson:"resume" json:"resume"`
	Address           string             `bson:"address" json:"address"`
	ProfileImage      string             `bson:"profile_image" json:"profileImage"`
	ApplicationStatus string             `bson:"application_status" json:"applicationStatus"`
	AppliedAt         time.Time          `bson:"applied_at" json:"appliedAt"`
}
