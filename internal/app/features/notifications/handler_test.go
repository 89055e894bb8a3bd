package notifications_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/dalemusser/jobhub/internal/app/features/notifications"
	notificationstore "github.com/dalemusser/jobhub/internal/app/store/notifications"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type recordingPub struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPub) Publish(userID, event string, _ any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, userID+":"+event)
	return 1
}

type env struct {
	h    *notifications.Handler
	pub  *recordingPub
	user testutil.TestUser
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	acct := fx.CreateAccount(context.Background(), "r@x.com", "secret1", models.RoleRecruiter)
	fx.CreateRecruiter(context.Background(), acct.ID, "Rita", "Acme")

	pub := &recordingPub{}
	d := notify.New(notificationstore.New(db), pub, zap.NewNop())
	return env{
		h:    notifications.NewHandler(db, d, zap.NewNop()),
		pub:  pub,
		user: testutil.TestUser{ID: acct.ID.Hex(), Role: models.RoleRecruiter},
	}
}

func (e env) create(t *testing.T, body map[string]any) models.Notification {
	t.Helper()
	rec := testutil.NewRecorder()
	e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest("POST", "/", e.user, body))
	rec.AssertStatus(t, http.StatusCreated)
	var n models.Notification
	rec.DecodeJSON(t, &n)
	return n
}

func TestHandleCreate_FillsCompanyAndPushes(t *testing.T) {
	e := setup(t)
	n := e.create(t, map[string]any{"type": "system", "title": "Hi", "message": "Welcome"})
	if n.CompanyName != "Acme" || n.IsRead || n.UserID.Hex() != e.user.ID {
		t.Errorf("created = %+v", n)
	}
	if len(e.pub.events) != 1 || e.pub.events[0] != e.user.ID+":new_notification" {
		t.Errorf("events = %v", e.pub.events)
	}
}

func TestHandleCreate_EmptyMetadata(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest("POST", "/", e.user, map[string]any{
		"type": "system", "title": "Hi", "message": "Welcome",
	}))
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"metadata":{}`)
}

func TestHandleCreate_Validation(t *testing.T) {
	e := setup(t)
	rec := testutil.NewRecorder()
	e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest("POST", "/", e.user, map[string]any{
		"type": "spam", "title": "Hi", "message": "x",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)

	rec = testutil.NewRecorder()
	e.h.HandleCreate(rec, testutil.NewAuthenticatedRequest("POST", "/", e.user, map[string]any{
		"type": "system", "message": "x",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestListIsSelfOnly(t *testing.T) {
	e := setup(t)
	e.create(t, map[string]any{"type": "system", "title": "A", "message": "a"})

	rec := testutil.NewRecorder()
	r := testutil.NewAuthenticatedRequest("GET", "/user/x", e.user, nil)
	e.h.ServeList(rec, testutil.WithChiURLParam(r, "userID", e.user.ID))
	rec.AssertStatus(t, http.StatusOK)
	var list []models.Notification
	rec.DecodeJSON(t, &list)
	if len(list) != 1 {
		t.Errorf("list = %d, want 1", len(list))
	}

	rec = testutil.NewRecorder()
	r = testutil.NewAuthenticatedRequest("GET", "/user/x", e.user, nil)
	e.h.ServeList(rec, testutil.WithChiURLParam(r, "userID", primitive.NewObjectID().Hex()))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestReadAndDelete(t *testing.T) {
	e := setup(t)
	a := e.create(t, map[string]any{"type": "system", "title": "A", "message": "a"})
	e.create(t, map[string]any{"type": "job_alert", "title": "B", "message": "b"})

	rec := testutil.NewRecorder()
	r := testutil.NewAuthenticatedRequest("PUT", "/x/read", e.user, nil)
	e.h.HandleMarkRead(rec, testutil.WithChiURLParam(r, "id", a.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"isRead":true`)

	// Another user cannot touch it.
	rec = testutil.NewRecorder()
	r = testutil.NewAuthenticatedRequest("PUT", "/x/read", testutil.SeekerUser(), nil)
	e.h.HandleMarkRead(rec, testutil.WithChiURLParam(r, "id", a.ID.Hex()))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = testutil.NewRecorder()
	r = testutil.NewAuthenticatedRequest("GET", "/user/x/unread-count", e.user, nil)
	e.h.ServeUnreadCount(rec, testutil.WithChiURLParam(r, "userID", e.user.ID))
	rec.AssertContains(t, `"count":1`)

	rec = testutil.NewRecorder()
	r = testutil.NewAuthenticatedRequest("PUT", "/user/x/read-all", e.user, nil)
	e.h.HandleMarkAllRead(rec, testutil.WithChiURLParam(r, "userID", e.user.ID))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"modified":1`)

	rec = testutil.NewRecorder()
	r = testutil.NewAuthenticatedRequest("DELETE", "/x", e.user, nil)
	e.h.HandleDelete(rec, testutil.WithChiURLParam(r, "id", a.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	r = testutil.NewAuthenticatedRequest("DELETE", "/x", e.user, nil)
	e.h.HandleDelete(rec, testutil.WithChiURLParam(r, "id", a.ID.Hex()))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = testutil.NewRecorder()
	e.h.HandleDeleteAll(rec, testutil.NewAuthenticatedRequest("DELETE", "/", e.user, nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"deleted":1`)
}
