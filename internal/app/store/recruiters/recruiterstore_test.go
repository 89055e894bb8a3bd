package recruiterstore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	"github.com/dalemusser/jobhub/internal/app/system/appstatus"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func TestCreate_DefaultsAndDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recruiterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	uid := primitive.NewObjectID()
	p, err := store.Create(ctx, models.RecruiterProfile{UserID: uid, FullName: "Neha", Email: " HR@Acme.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ProfileImage != models.DefaultRecruiterImage || p.Email != "hr@acme.com" || p.JobPosts == nil {
		t.Errorf("profile = %+v", p)
	}
	if _, err := store.Create(ctx, models.RecruiterProfile{UserID: uid}); !errors.Is(err, recruiterstore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestAddUpdateDeleteJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recruiterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	testutil.NewFixtures(t, db).CreateRecruiter(ctx, uid, "Neha", "Acme")

	j, err := store.AddJob(ctx, uid, models.JobPost{JobTitle: "Go Developer", Skills: []string{"Go", " "}})
	if err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if j.JobType != models.JobTypeFullTime || j.Openings != 1 || len(j.Skills) != 1 || j.PostedAt.IsZero() {
		t.Errorf("job defaults not applied: %+v", j)
	}

	p, _ := store.ByUserID(ctx, uid)
	rev := p.Revision
	if rev != 1 {
		t.Errorf("Revision after AddJob = %d, want 1", rev)
	}

	upd, err := store.UpdateJob(ctx, uid, j.ID, recruiterstore.JobUpdate{Location: strPtr("Remote")}, &rev)
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if upd.Location != "Remote" || upd.JobTitle != "Go Developer" {
		t.Errorf("updated job = %+v", upd)
	}

	// rev is now stale.
	_, err = store.UpdateJob(ctx, uid, j.ID, recruiterstore.JobUpdate{Location: strPtr("Pune")}, &rev)
	if !errors.Is(err, recruiterstore.ErrRevisionMismatch) {
		t.Errorf("expected ErrRevisionMismatch, got %v", err)
	}

	if _, err := store.UpdateJob(ctx, uid, primitive.NewObjectID(), recruiterstore.JobUpdate{}, nil); !errors.Is(err, recruiterstore.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := store.AddJob(ctx, primitive.NewObjectID(), models.JobPost{JobTitle: "x"}); !errors.Is(err, recruiterstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := store.DeleteJob(ctx, uid, j.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if err := store.DeleteJob(ctx, uid, j.ID); !errors.Is(err, recruiterstore.ErrJobNotFound) {
		t.Errorf("second delete: expected ErrJobNotFound, got %v", err)
	}
}

func TestApply_SecondApplicationConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recruiterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	job := testutil.JobPost("Backend Engineer", "Pune", "Go")
	testutil.NewFixtures(t, db).CreateRecruiter(ctx, primitive.NewObjectID(), "Neha", "Acme", job)

	seeker := primitive.NewObjectID()
	a, err := store.Apply(ctx, job.ID, models.Applicant{UserID: seeker, Name: "Asha"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.ApplicationStatus != string(appstatus.StatusApplied) {
		t.Errorf("status = %q", a.ApplicationStatus)
	}

	if _, err := store.Apply(ctx, job.ID, models.Applicant{UserID: seeker, Name: "Asha"}); !errors.Is(err, recruiterstore.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}

	p, err := store.ByJobID(ctx, job.ID)
	if err != nil {
		t.Fatalf("ByJobID: %v", err)
	}
	got, _ := p.JobPost(job.ID)
	if len(got.Applicants) != 1 {
		t.Errorf("applicants = %d, want 1", len(got.Applicants))
	}

	if ok, _ := store.HasApplied(ctx, job.ID, seeker); !ok {
		t.Error("HasApplied = false")
	}
	if _, err := store.Apply(ctx, primitive.NewObjectID(), models.Applicant{UserID: seeker}); !errors.Is(err, recruiterstore.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApply_ConcurrentDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recruiterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	job := testutil.JobPost("Backend Engineer", "Pune")
	testutil.NewFixtures(t, db).CreateRecruiter(ctx, primitive.NewObjectID(), "Neha", "Acme", job)
	seeker := primitive.NewObjectID()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Apply(ctx, job.ID, models.Applicant{UserID: seeker})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, recruiterstore.ErrAlreadyApplied):
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("successful applies = %d, want 1", succeeded)
	}
}

func TestSetApplicantStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recruiterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	recruiter := primitive.NewObjectID()
	job := testutil.JobPost("QA Engineer", "Delhi")
	testutil.NewFixtures(t, db).CreateRecruiter(ctx, recruiter, "Neha", "Acme", job)
	seeker := primitive.NewObjectID()
	if _, err := store.Apply(ctx, job.ID, models.Applicant{UserID: seeker}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	p, err := store.SetApplicantStatus(ctx, recruiter, job.ID, seeker, appstatus.StatusShortlist)
	if err != nil {
		t.Fatalf("SetApplicantStatus: %v", err)
	}
	j, _ := p.JobPost(job.ID)
	a, _ := j.Applicant(seeker)
	if a.ApplicationStatus != "shortlist" {
		t.Errorf("status = %q", a.ApplicationStatus)
	}

	// shortlist is terminal.
	if _, err := store.SetApplicantStatus(ctx, recruiter, job.ID, seeker, appstatus.StatusReject); !errors.Is(err, recruiterstore.ErrStatusConflict) {
		t.Errorf("expected ErrStatusConflict, got %v", err)
	}
	if _, err := store.SetApplicantStatus(ctx, recruiter, job.ID, primitive.NewObjectID(), appstatus.StatusMaybe); !errors.Is(err, recruiterstore.ErrApplicantNotFound) {
		t.Errorf("expected ErrApplicantNotFound, got %v", err)
	}
	if _, err := store.SetApplicantStatus(ctx, primitive.NewObjectID(), job.ID, seeker, appstatus.StatusMaybe); !errors.Is(err, recruiterstore.ErrNotFound) {
		t.Errorf("another recruiter: expected ErrNotFound, got %v", err)
	}
	if _, err := store.SetApplicantStatus(ctx, recruiter, job.ID, seeker, appstatus.StatusApplied); !errors.Is(err, recruiterstore.ErrStatusConflict) {
		t.Errorf("back to applied: expected ErrStatusConflict, got %v", err)
	}
}

func TestAppliedJobsAndTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recruiterstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	older := testutil.JobPost("Designer", "Mumbai")
	older.PostedAt = time.Now().UTC().Add(-time.Hour)
	older.Openings = 3
	newer := testutil.JobPost("Go Developer", "Pune")
	fx.CreateRecruiter(ctx, primitive.NewObjectID(), "Neha", "Acme", older)
	fx.CreateRecruiter(ctx, primitive.NewObjectID(), "Raj", "Globex", newer)
	fx.CreateRecruiter(ctx, primitive.NewObjectID(), "Idle", "None")

	seeker := primitive.NewObjectID()
	for _, id := range []primitive.ObjectID{older.ID, newer.ID} {
		if _, err := store.Apply(ctx, id, models.Applicant{UserID: seeker}); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	if _, err := store.Apply(ctx, newer.ID, models.Applicant{UserID: primitive.NewObjectID()}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	applied, err := store.AppliedJobs(ctx, seeker)
	if err != nil {
		t.Fatalf("AppliedJobs: %v", err)
	}
	if len(applied) != 2 || applied[0].ID != older.ID {
		t.Errorf("applied = %+v", applied)
	}
	if n, _ := store.CountApplications(ctx, seeker); n != 2 {
		t.Errorf("CountApplications = %d, want 2", n)
	}

	tot, err := store.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	want := recruiterstore.Totals{JobPosts: 2, Applications: 3, ActiveRecruiters: 2, Openings: 4}
	if tot != want {
		t.Errorf("Totals = %+v, want %+v", tot, want)
	}

	latest, err := store.Latest(ctx)
	if err != nil || latest == nil {
		t.Fatalf("Latest = %v, %v", latest, err)
	}
	if latest.JobTitle != "Go Developer" || latest.Recruiter != "Raj" {
		t.Errorf("latest = %+v", latest)
	}

	with, err := store.WithJobs(ctx, []primitive.ObjectID{newer.ID})
	if err != nil || len(with) != 1 || with[0].CompanyName != "Globex" {
		t.Errorf("WithJobs = %v, %v", with, err)
	}
}
