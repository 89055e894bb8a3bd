// internal/domain/models/jobseeker.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSeekerImage is shown when a job seeker has no profile image.
const DefaultSeekerImage = "https://randomuser.me/api/portraits"

// JobSeekerProfile is the profile owned by a jobSeeker Account (one per account).
type JobSeekerProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	FullName     string             `bson:"full_name" json:"fullName"`
	MobileNumber string             `bson:"mobile_number" json:"mobileNumber"`
	Resume       string             `bson:"resume,omitempty" json:"resume,omitempty"`
	ProfileImage string             `bson:"profile_image,omitempty" json:"profileImage,omitempty"`

	BasicDetails             BasicDetails        `bson:"basic_details" json:"basicDetails"`
	ProfessionalDetails      ProfessionalDetails `bson:"professional_details" json:"professionalDetails"`
	PersonalDetails          PersonalDetails     `bson:"personal_details" json:"personalDetails"`
	Skills                   SkillSet            `bson:"skills" json:"skills"`
	RolesAndResponsibilities RolesSummary        `bson:"roles_and_responsibilities" json:"rolesAndResponsibilities"`
	Education                []Education         `bson:"education" json:"education"`
	EmploymentDetailsList    []Employment        `bson:"employment_details_list" json:"employmentDetailsList"`

	// SavedJobs holds job post ids; it behaves as a set.
	SavedJobs []primitive.ObjectID `bson:"saved_jobs" json:"savedJobs"`

	EmailVerified  bool `bson:"email_verified" json:"emailVerified"`
	MobileVerified bool `bson:"mobile_verified" json:"mobileVerified"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type BasicDetails struct {
	Location               string     `bson:"location" json:"location"`
	Experience             string     `bson:"experience" json:"experience"`
	CTC                    string     `bson:"ctc" json:"ctc"`
	ExpectedCTC            string     `bson:"expected_ctc" json:"expectedCtc"`
	NoticePeriod           string     `bson:"notice_period" json:"noticePeriod"`
	CurrentlyServingNotice bool       `bson:"currently_serving_notice" json:"currentlyServingNotice"`
	NoticeEndDate          *time.Time `bson:"notice_end_date,omitempty" json:"noticeEndDate,omitempty"`
}

type ProfessionalDetails struct {
	CurrentIndustry string `bson:"current_industry" json:"currentIndustry"`
	Department      string `bson:"department" json:"department"`
	Designation     string `bson:"designation" json:"designation"`
}

type PersonalDetails struct {
	Address       string     `bson:"address" json:"address"`
	IsDisabled    bool       `bson:"is_disabled" json:"isDisabled"`
	DateOfBirth   *time.Time `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Gender        string     `bson:"gender" json:"gender"`
	MaritalStatus string     `bson:"marital_status" json:"maritalStatus"`
	Languages     []string   `bson:"languages" json:"languages"`
}

type SkillSet struct {
	Technologies []string `bson:"technologies" json:"technologies"`
}

type RolesSummary struct {
	Summaries []string `bson:"summaries" json:"summaries"`
}

// Education is one qualification. School-level entries (10th, 12th) use
// Board/Medium/Percentage/YearOfPassing; all others use the course fields.
type Education struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Qualification string             `bson:"qualification" json:"qualification"`

	Board         string `bson:"board,omitempty" json:"board,omitempty"`
	Medium        string `bson:"medium,omitempty" json:"medium,omitempty"`
	Percentage    string `bson:"percentage,omitempty" json:"percentage,omitempty"`
	YearOfPassing string `bson:"year_of_passing,omitempty" json:"yearOfPassing,omitempty"`

	Course     string `bson:"course,omitempty" json:"course,omitempty"`
	College    string `bson:"college,omitempty" json:"college,omitempty"`
	Grading    string `bson:"grading,omitempty" json:"grading,omitempty"`
	CGPA       string `bson:"cgpa,omitempty" json:"cgpa,omitempty"`
	CourseType string `bson:"course_type,omitempty" json:"courseType,omitempty"`
	StartYear  string `bson:"start_year,omitempty" json:"startYear,omitempty"`
	EndYear    string `bson:"end_year,omitempty" json:"endYear,omitempty"`
}

// IsSchoolLevel reports whether the qualification uses the school-level shape.
func (e Education) IsSchoolLevel() bool {
	switch e.Qualification {
	case "10th", "12th":
		return true
	}
	return false
}

// Normalized clears the fields that do not belong to the qualification's shape.
func (e Education) Normalized() Education {
	if e.IsSchoolLevel() {
		e.Course, e.College, e.Grading, e.CGPA = "", "", "", ""
		e.CourseType, e.StartYear, e.EndYear = "", "", ""
		return e
	}
	e.Board, e.Medium, e.Percentage, e.YearOfPassing = "", "", "", ""
	return e
}

type Salary struct {
	Currency string `bson:"currency" json:"currency"`
	Fixed    string `bson:"fixed" json:"fixed"`
	Variable string `bson:"variable" json:"variable"`
}

type Employment struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	Company          string             `bson:"company" json:"company"`
	JobTitle         string             `bson:"job_title" json:"jobTitle"`
	IsCurrentCompany bool               `bson:"is_current_company" json:"isCurrentCompany"`
	CurrentSalary    Salary             `bson:"current_salary" json:"currentSalary"`
	PayType          string             `bson:"pay_type" json:"payType"`
	StartDate        *time.Time         `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate          *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	IsOngoing        bool               `bson:"is_ongoing" json:"isOngoing"`
	Experience       string             `bson:"experience" json:"experience"`
	Projects         []string           `bson:"projects" json:"projects"`
	Responsibilities []string           `bson:"responsibilities" json:"responsibilities"`
}
