package jobs_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/app/features/jobs"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.uber.org/zap"
)

type env struct {
	h      *jobs.Handler
	seeker testutil.TestUser
	react  models.JobPost
	intern models.JobPost
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	react := testutil.JobPost("Frontend Engineer", "Pune", "React")
	react.Experience = "3 years"
	react.PostedAt = time.Now().UTC().Add(-time.Hour)

	intern := testutil.JobPost("Fresher Intern", "Delhi", "Excel")
	intern.JobType = models.JobTypeInternship
	intern.Experience = "Fresher"

	rec := fx.CreateAccount(ctx, "r@x.com", "secret1", models.RoleRecruiter)
	fx.CreateRecruiter(ctx, rec.ID, "Rita Recruiter", "Acme", react, intern)

	seeker := fx.CreateAccount(ctx, "s@x.com", "secret1", models.RoleJobSeeker)
	fx.CreateSeeker(ctx, seeker.ID, "Sam Seeker")

	return env{
		h:      jobs.NewHandler(db, zap.NewNop()),
		seeker: testutil.TestUser{ID: seeker.ID.Hex(), Role: models.RoleJobSeeker},
		react:  react,
		intern: intern,
	}
}

func decodePosts(t *testing.T, rec *testutil.ResponseRecorder) []models.JobPost {
	t.Helper()
	var out []models.JobPost
	rec.DecodeJSON(t, &out)
	return out
}

func TestServeSearch_FiltersAndResolvesCompany(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	e.h.ServeSearch(rec, testutil.NewRequest("GET", "/?search=acme&location=Delhi"))
	rec.AssertStatus(t, http.StatusOK)

	var got []struct {
		JobTitle    string `json:"jobTitle"`
		CompanyName string `json:"companyName"`
	}
	rec.DecodeJSON(t, &got)
	if len(got) != 1 || got[0].JobTitle != "Fresher Intern" || got[0].CompanyName != "Acme" {
		t.Errorf("search = %+v", got)
	}

	rec = testutil.NewRecorder()
	e.h.ServeSearch(rec, testutil.NewRequest("GET", "/?location=delhi"))
	if n := len(decodePosts(t, rec)); n != 0 {
		t.Errorf("location must match exactly, got %d results", n)
	}
}

func TestHandleDesignationSearch(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	e.h.HandleDesignationSearch(rec, testutil.NewJSONRequest("POST", "/search", map[string]any{
		"designation": []string{"react"},
		"type":        "job",
	}))
	rec.AssertStatus(t, http.StatusOK)
	got := decodePosts(t, rec)
	if len(got) != 1 || got[0].ID != e.react.ID {
		t.Errorf("search = %+v", got)
	}

	rec = testutil.NewRecorder()
	e.h.HandleDesignationSearch(rec, testutil.NewJSONRequest("POST", "/search", map[string]any{
		"designation": "react", "type": "internship",
	}))
	if n := len(decodePosts(t, rec)); n != 0 {
		t.Errorf("internship filter returned %d", n)
	}
}

func TestHandleRecommended(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	e.h.HandleRecommended(rec, testutil.NewAuthenticatedRequest("POST", "/recommended", e.seeker, map[string]any{
		"skills": []any{map[string]string{"name": "react"}},
	}))
	rec.AssertStatus(t, http.StatusOK)
	got := decodePosts(t, rec)
	if len(got) != 1 || got[0].ID != e.react.ID {
		t.Errorf("recommended = %+v", got)
	}

	rec = testutil.NewRecorder()
	e.h.HandleRecommended(rec, testutil.NewAuthenticatedRequest("POST", "/recommended", e.seeker, map[string]any{}))
	got = decodePosts(t, rec)
	if len(got) != 1 || got[0].ID != e.intern.ID {
		t.Errorf("fresher fallback = %+v", got)
	}
}

func TestServeLatestAndCount(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	e.h.ServeLatest(rec, testutil.NewAuthenticatedRequest("GET", "/latest", e.seeker, nil))
	got := decodePosts(t, rec)
	if len(got) != 2 || got[0].ID != e.intern.ID {
		t.Errorf("latest = %+v", got)
	}

	rec = testutil.NewRecorder()
	e.h.ServeCount(rec, testutil.NewAuthenticatedRequest("GET", "/count", e.seeker, nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":2`)
}

func applyRequest(e env, jobID string, body map[string]any) *http.Request {
	r := testutil.NewAuthenticatedRequest("POST", "/x/apply", e.seeker, body)
	return testutil.WithChiURLParam(r, "jobID", jobID)
}

func TestHandleApply(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	e.h.HandleApply(rec, applyRequest(e, e.react.ID.Hex(), nil))
	rec.AssertStatus(t, http.StatusBadRequest)
	if rec.Message() != "Update your profile" {
		t.Errorf("message = %q", rec.Message())
	}

	body := map[string]any{"resume": "https://cdn.example/cv.pdf"}
	rec = testutil.NewRecorder()
	e.h.HandleApply(rec, applyRequest(e, e.react.ID.Hex(), body))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	e.h.HandleApply(rec, applyRequest(e, e.react.ID.Hex(), body))
	rec.AssertStatus(t, http.StatusConflict)

	rec = testutil.NewRecorder()
	e.h.HandleApply(rec, applyRequest(e, "000000000000000000000000", body))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = testutil.NewRecorder()
	r := testutil.NewAuthenticatedRequest("GET", "/x/is-applied", e.seeker, nil)
	e.h.ServeIsApplied(rec, testutil.WithChiURLParam(r, "jobID", e.react.ID.Hex()))
	rec.AssertContains(t, `"applied":true`)

	rec = testutil.NewRecorder()
	e.h.ServeAppliedCount(rec, testutil.NewAuthenticatedRequest("GET", "/applied/count", e.seeker, nil))
	rec.AssertContains(t, `"count":1`)

	rec = testutil.NewRecorder()
	e.h.ServeApplied(rec, testutil.NewAuthenticatedRequest("GET", "/applied", e.seeker, nil))
	got := decodePosts(t, rec)
	if len(got) != 1 || got[0].CompanyLogo != models.DefaultCompanyLogo || got[0].CompanyName != models.CompanyNotProvided {
		t.Fatalf("applied = %+v", got)
	}
	a := got[0].Applicants[0]
	if a.Email != "s@x.com" || a.Address != "12 Test Street" || a.ApplicationStatus != "applied" {
		t.Errorf("applicant = %+v", a)
	}
}

func TestSavedJobs(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	e.h.HandleSave(rec, testutil.NewAuthenticatedRequest("POST", "/saved", e.seeker, map[string]string{"jobId": e.intern.ID.Hex()}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	e.h.HandleSave(rec, testutil.NewAuthenticatedRequest("POST", "/saved", e.seeker, map[string]string{"jobId": e.intern.ID.Hex()}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	e.h.ServeSaved(rec, testutil.NewAuthenticatedRequest("GET", "/saved", e.seeker, nil))
	var ids []string
	rec.DecodeJSON(t, &ids)
	if len(ids) != 1 || ids[0] != e.intern.ID.Hex() {
		t.Errorf("saved = %v", ids)
	}

	rec = testutil.NewRecorder()
	e.h.ServeSavedDetails(rec, testutil.NewAuthenticatedRequest("GET", "/saved/details", e.seeker, nil))
	got := decodePosts(t, rec)
	if len(got) != 1 || got[0].JobTitle != "Fresher Intern" {
		t.Errorf("details = %+v", got)
	}

	rec = testutil.NewRecorder()
	r := testutil.NewAuthenticatedRequest("DELETE", "/saved/x", e.seeker, nil)
	e.h.HandleUnsave(rec, testutil.WithChiURLParam(r, "jobID", e.intern.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"updatedSavedJobs":[]`)

	rec = testutil.NewRecorder()
	e.h.HandleSave(rec, testutil.NewAuthenticatedRequest("POST", "/saved", e.seeker, map[string]string{"jobId": "000000000000000000000000"}))
	rec.AssertStatus(t, http.StatusNotFound)
}
