package seekers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/jobhub/internal/app/features/seekers"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.uber.org/zap"
)

type env struct {
	h    *seekers.Handler
	fx   *testutil.Fixtures
	user testutil.TestUser
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	acct := fx.CreateAccount(ctx, "s@x.com", "secret1", models.RoleJobSeeker)
	fx.CreateSeeker(ctx, acct.ID, "Sam Seeker")
	return env{
		h:    seekers.NewHandler(db, zap.NewNop()),
		fx:   fx,
		user: testutil.TestUser{ID: acct.ID.Hex(), Role: models.RoleJobSeeker},
	}
}

func TestServeMe(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/me", e.user, nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"fullName":"Sam Seeker"`)

	rec = testutil.NewRecorder()
	e.h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/me", testutil.SeekerUser(), nil))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeDetails_IncludesEmailAndDefaults(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.ServeDetails(rec, testutil.NewAuthenticatedRequest("GET", "/details", e.user, nil))
	rec.AssertStatus(t, http.StatusOK)

	var got map[string]string
	rec.DecodeJSON(t, &got)
	if got["email"] != "s@x.com" || got["address"] != "12 Test Street" || got["profileImage"] != models.DefaultSeekerImage {
		t.Errorf("details = %v", got)
	}
}

func TestHandleBasic_AcceptsPluralExperience(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.HandleBasic(rec, testutil.NewAuthenticatedRequest("PUT", "/basic", e.user, map[string]any{
		"location": "Pune", "experiences": "3 years", "currentlyServingNotice": false,
		"noticeEndDate": "2025-05-01T00:00:00Z",
	}))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Message string                  `json:"message"`
		User    models.JobSeekerProfile `json:"user"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.User.BasicDetails.Experience != "3 years" || resp.User.BasicDetails.Location != "Pune" {
		t.Errorf("basic = %+v", resp.User.BasicDetails)
	}
	if resp.User.BasicDetails.NoticeEndDate != nil {
		t.Error("notice end date kept while not serving notice")
	}
}

func TestHandleSkills_BothShapes(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.HandleSkills(rec, testutil.NewAuthenticatedRequest("PUT", "/skills", e.user,
		`{"skills": ["Go", {"name": "MongoDB"}]}`))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "MongoDB")
}

func TestHandleRoles_RequiresArray(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.HandleRoles(rec, testutil.NewAuthenticatedRequest("PUT", "/roles", e.user, map[string]any{}))
	rec.AssertStatus(t, http.StatusBadRequest)
	if rec.Message() != "Summaries must be an array" {
		t.Errorf("message = %q", rec.Message())
	}
}

func TestEducationLifecycle(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	e.h.HandleAddEducation(rec, testutil.NewAuthenticatedRequest("POST", "/education", e.user, map[string]any{
		"qualification": "10th", "board": "CBSE", "course": "ignored",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	var added struct {
		Education models.Education `json:"education"`
	}
	rec.DecodeJSON(t, &added)
	if added.Education.ID.IsZero() || added.Education.Course != "" {
		t.Fatalf("education = %+v", added.Education)
	}
	id := added.Education.ID.Hex()

	rec = testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest("PUT", "/education/"+id, e.user, map[string]any{
		"qualification": "B.Tech", "college": "IIT", "board": "ignored",
	})
	e.h.HandleUpdateEducation(rec, testutil.WithChiURLParam(req, "id", id))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"college":"IIT"`)

	rec = testutil.NewRecorder()
	req = testutil.NewAuthenticatedRequest("DELETE", "/education/"+id, e.user, nil)
	e.h.HandleDeleteEducation(rec, testutil.WithChiURLParam(req, "id", id))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	req = testutil.NewAuthenticatedRequest("DELETE", "/education/"+id, e.user, nil)
	e.h.HandleDeleteEducation(rec, testutil.WithChiURLParam(req, "id", id))
	rec.AssertStatus(t, http.StatusNotFound)
	if rec.Message() != "Education not found" {
		t.Errorf("message = %q", rec.Message())
	}
}

func TestEmployment_InvalidID(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest("PUT", "/employment/zzz", e.user, map[string]any{"company": "Acme"})
	e.h.HandleUpdateEmployment(rec, testutil.WithChiURLParam(req, "id", "zzz"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeSettings_NeverLeaksPassword(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.ServeSettings(rec, testutil.NewAuthenticatedRequest("GET", "/settings", e.user, nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"email":"s@x.com"`)
	if body := rec.Body.String(); strings.Contains(body, "password") || strings.Contains(body, "$2a$") {
		t.Errorf("settings leaked a password: %s", body)
	}
}

func TestServeEmailVerified(t *testing.T) {
	e := setup(t)

	rec := testutil.NewRecorder()
	req := testutil.NewRequest("GET", "/check-email-verified/"+e.user.ID)
	e.h.ServeEmailVerified(rec, testutil.WithChiURLParam(req, "userID", e.user.ID))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"verified":false`)

	other := testutil.SeekerUser().ID
	rec = testutil.NewRecorder()
	req = testutil.NewRequest("GET", "/check-email-verified/"+other)
	e.h.ServeEmailVerified(rec, testutil.WithChiURLParam(req, "userID", other))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeAll(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.ServeAll(rec, testutil.NewAuthenticatedRequest("GET", "/all", testutil.RecruiterUser(), nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Sam Seeker")
}
