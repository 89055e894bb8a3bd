package apierr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"go.uber.org/zap"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind apierr.Kind
		want int
	}{
		{apierr.KindNotFound, http.StatusNotFound},
		{apierr.KindInvalid, http.StatusBadRequest},
		{apierr.KindExpired, http.StatusBadRequest},
		{apierr.KindUnauthorized, http.StatusUnauthorized},
		{apierr.KindForbidden, http.StatusForbidden},
		{apierr.KindConflict, http.StatusConflict},
		{apierr.KindTooManyRequests, http.StatusTooManyRequests},
		{apierr.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	sentinel := errors.New("boom")
	err := fmt.Errorf("outer: %w", apierr.Wrap(apierr.KindConflict, "Already applied", sentinel))

	if apierr.KindOf(err) != apierr.KindConflict {
		t.Errorf("KindOf = %v, want conflict", apierr.KindOf(err))
	}
	if !errors.Is(err, sentinel) {
		t.Error("expected wrapped sentinel to be reachable")
	}
	if apierr.KindOf(sentinel) != apierr.KindInternal {
		t.Error("unclassified errors should be internal")
	}
}

func TestWrite_Classified(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, zap.NewNop(), apierr.Forbidden("You are not registered as a recruiter"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["message"] != "You are not registered as a recruiter" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestWrite_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, zap.NewNop(), errors.New("mongo: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("internal cause leaked into response body")
	}
}

func TestDecode(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c"}`))
	if err := apierr.Decode(r, &dst); err != nil || dst.Email != "a@b.c" {
		t.Fatalf("Decode = %v, dst = %+v", err, dst)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))
	if err := apierr.Decode(r, &dst); !apierr.Is(err, apierr.KindInvalid) {
		t.Errorf("expected invalid error, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := apierr.Decode(r, &dst); err != nil {
		t.Errorf("empty body should decode to zero value, got %v", err)
	}
}
