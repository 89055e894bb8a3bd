package auditlog_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/app/features/auditlog"
	"github.com/dalemusser/jobhub/internal/app/store/audit"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func seed(t *testing.T, h *auditlog.Handler, events ...audit.Event) {
	t.Helper()
	for _, e := range events {
		if err := h.Events.Log(context.Background(), e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
}

type listResponse struct {
	Events  []audit.Event `json:"events"`
	Total   int64         `json:"total"`
	HasNext bool          `json:"hasNext"`
}

func TestServeList_FiltersAndPages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := auditlog.NewHandler(db, zap.NewNop())
	uid := primitive.NewObjectID()
	seed(t, h,
		audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &uid, Success: true},
		audit.Event{Category: audit.CategoryAuth, EventType: audit.EventPasswordChanged, UserID: &uid, Success: true},
		audit.Event{Category: audit.CategoryJobs, EventType: audit.EventJobPosted, ActorID: &uid, Success: true},
	)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/?category=auth&limit=1", testutil.AdminUser(), nil))
	rec.AssertStatus(t, http.StatusOK)
	var got listResponse
	rec.DecodeJSON(t, &got)
	if got.Total != 2 || len(got.Events) != 1 || !got.HasNext {
		t.Errorf("page 1 = %+v", got)
	}

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/?category=auth&limit=1&start=2", testutil.AdminUser(), nil))
	got = listResponse{}
	rec.DecodeJSON(t, &got)
	if len(got.Events) != 1 || got.HasNext {
		t.Errorf("page 2 = %+v", got)
	}

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/?event_type=job_posted", testutil.AdminUser(), nil))
	got = listResponse{}
	rec.DecodeJSON(t, &got)
	if got.Total != 1 || got.Events[0].Category != audit.CategoryJobs {
		t.Errorf("jobs = %+v", got)
	}
}

func TestServeList_DateRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := auditlog.NewHandler(db, zap.NewNop())
	seed(t, h, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventOTPSent, Success: true})

	today := time.Now().UTC().Format("2006-01-02")
	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/?start_date="+today+"&end_date="+today, testutil.AdminUser(), nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":1`)

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/?end_date=2000-01-01", testutil.AdminUser(), nil))
	rec.AssertContains(t, `"total":0`)
}

func TestServeList_BadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := auditlog.NewHandler(db, zap.NewNop())

	for _, q := range []string{"/?user_id=nope", "/?start_date=yesterday"} {
		rec := testutil.NewRecorder()
		h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", q, testutil.AdminUser(), nil))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}
