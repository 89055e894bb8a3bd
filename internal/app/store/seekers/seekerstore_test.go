package seekerstore_test

import (
	"errors"
	"testing"
	"time"

	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_DuplicateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := seekerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	uid := primitive.NewObjectID()
	p, err := store.Create(ctx, models.JobSeekerProfile{UserID: uid, FullName: "  Asha  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.FullName != "Asha" || p.SavedJobs == nil || p.Education == nil {
		t.Errorf("profile not normalized: %+v", p)
	}
	if _, err := store.Create(ctx, models.JobSeekerProfile{UserID: uid}); !errors.Is(err, seekerstore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestSectionUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := seekerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	testutil.NewFixtures(t, db).CreateSeeker(ctx, uid, "Ravi")

	end := time.Now().UTC().Truncate(time.Millisecond)
	p, err := store.UpdateBasic(ctx, uid, models.BasicDetails{Location: "Pune", NoticeEndDate: &end})
	if err != nil {
		t.Fatalf("UpdateBasic: %v", err)
	}
	if p.BasicDetails.Location != "Pune" || p.BasicDetails.NoticeEndDate != nil {
		t.Errorf("basic = %+v (notice end date should be cleared)", p.BasicDetails)
	}

	p, err = store.UpdateSkills(ctx, uid, []string{" Go ", "", "MongoDB"})
	if err != nil {
		t.Fatalf("UpdateSkills: %v", err)
	}
	if len(p.Skills.Technologies) != 2 || p.Skills.Technologies[0] != "Go" {
		t.Errorf("skills = %v", p.Skills.Technologies)
	}

	if _, err := store.UpdateProfessional(ctx, primitive.NewObjectID(), models.ProfessionalDetails{}); !errors.Is(err, seekerstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}

	basic, err := store.BasicDetails(ctx, uid)
	if err != nil || basic.FullName != "Ravi" {
		t.Errorf("BasicDetails = %+v, %v", basic, err)
	}
}

func TestEducationLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := seekerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	testutil.NewFixtures(t, db).CreateSeeker(ctx, uid, "Meera")

	e, err := store.AddEducation(ctx, uid, models.Education{Qualification: "10th", Board: "CBSE", Course: "ignored"})
	if err != nil {
		t.Fatalf("AddEducation: %v", err)
	}
	if e.ID.IsZero() || e.Course != "" {
		t.Errorf("education = %+v", e)
	}

	upd, err := store.UpdateEducation(ctx, uid, e.ID, models.Education{Qualification: "B.Tech", College: "IIT"})
	if err != nil {
		t.Fatalf("UpdateEducation: %v", err)
	}
	if upd.ID != e.ID || upd.Board != "" || upd.College != "IIT" {
		t.Errorf("updated = %+v", upd)
	}

	if _, err := store.UpdateEducation(ctx, uid, primitive.NewObjectID(), models.Education{}); !errors.Is(err, seekerstore.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}

	p, err := store.DeleteEducation(ctx, uid, e.ID)
	if err != nil {
		t.Fatalf("DeleteEducation: %v", err)
	}
	if len(p.Education) != 0 {
		t.Errorf("education left: %v", p.Education)
	}
}

func TestEmploymentLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := seekerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	testutil.NewFixtures(t, db).CreateSeeker(ctx, uid, "Kiran")

	e, err := store.AddEmployment(ctx, uid, models.Employment{Company: "Acme", JobTitle: "Dev"})
	if err != nil {
		t.Fatalf("AddEmployment: %v", err)
	}
	if _, err := store.UpdateEmployment(ctx, uid, e.ID, models.Employment{Company: "Acme", JobTitle: "Lead"}); err != nil {
		t.Fatalf("UpdateEmployment: %v", err)
	}
	p, _ := store.ByUserID(ctx, uid)
	if len(p.EmploymentDetailsList) != 1 || p.EmploymentDetailsList[0].JobTitle != "Lead" {
		t.Errorf("employment = %+v", p.EmploymentDetailsList)
	}
	if _, err := store.DeleteEmployment(ctx, uid, primitive.NewObjectID()); !errors.Is(err, seekerstore.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestSavedJobsIsASet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := seekerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	testutil.NewFixtures(t, db).CreateSeeker(ctx, uid, "Dev")

	job := primitive.NewObjectID()
	_, _ = store.SaveJob(ctx, uid, job)
	saved, err := store.SaveJob(ctx, uid, job)
	if err != nil {
		t.Fatalf("SaveJob: %v", err)
	}
	if len(saved) != 1 {
		t.Errorf("saved = %v, want one entry", saved)
	}

	saved, err = store.UnsaveJob(ctx, uid, job)
	if err != nil || len(saved) != 0 {
		t.Errorf("UnsaveJob = %v, %v", saved, err)
	}
}

func TestSetEmailVerifiedAndAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := seekerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	testutil.NewFixtures(t, db).CreateSeeker(ctx, uid, "Isha")

	if err := store.SetEmailVerified(ctx, uid); err != nil {
		t.Fatalf("SetEmailVerified: %v", err)
	}
	p, _ := store.ByUserID(ctx, uid)
	if !p.EmailVerified {
		t.Error("EmailVerified not set")
	}

	all, err := store.All(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("All = %v, %v", all, err)
	}
	if all[0].ProfileImage != models.DefaultSeekerImage {
		t.Errorf("ProfileImage = %q", all[0].ProfileImage)
	}
}
