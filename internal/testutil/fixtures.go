package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data directly in the
// collections, without going through the stores under test.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAccount inserts an account whose password is the given plain text.
func (f *Fixtures) CreateAccount(ctx context.Context, email, password, role string) models.Account {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	acct := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("accounts").InsertOne(ctx, acct); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return acct
}

// CreateSeeker inserts a job seeker profile for userID.
func (f *Fixtures) CreateSeeker(ctx context.Context, userID primitive.ObjectID, fullName string) models.JobSeekerProfile {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.JobSeekerProfile{
		ID:                    primitive.NewObjectID(),
		UserID:                userID,
		FullName:              fullName,
		MobileNumber:          "9999999999",
		PersonalDetails:       models.PersonalDetails{Address: "12 Test Street", Languages: []string{}},
		Skills:                models.SkillSet{Technologies: []string{}},
		Education:             []models.Education{},
		EmploymentDetailsList: []models.Employment{},
		SavedJobs:             []primitive.ObjectID{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if _, err := f.db.Collection("jobseeker_profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test seeker profile: %v", err)
	}
	return p
}

// CreateRecruiter inserts a recruiter profile for userID owning the given posts.
func (f *Fixtures) CreateRecruiter(ctx context.Context, userID primitive.ObjectID, fullName, company string, posts ...models.JobPost) models.RecruiterProfile {
	f.t.Helper()

	if posts == nil {
		posts = []models.JobPost{}
	}
	now := time.Now().UTC()
	p := models.RecruiterProfile{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		FullName:     fullName,
		Email:        "recruiter-" + userID.Hex() + "@test.com",
		CompanyName:  company,
		ProfileImage: models.DefaultRecruiterImage,
		JobPosts:     posts,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("recruiter_profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test recruiter profile: %v", err)
	}
	return p
}

// JobPost builds (but does not insert) a job post with sensible defaults.
func JobPost(title, location string, skills ...string) models.JobPost {
	if skills == nil {
		skills = []string{}
	}
	return models.JobPost{
		ID:         primitive.NewObjectID(),
		JobTitle:   title,
		Location:   location,
		JobType:    models.JobTypeFullTime,
		Skills:     skills,
		Openings:   1,
		Applicants: []models.Applicant{},
		PostedAt:   time.Now().UTC(),
	}
}
