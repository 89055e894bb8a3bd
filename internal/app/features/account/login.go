// internal/app/features/account/login.go
package account

import (
	"context"
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/inputval"
	"github.com/dalemusser/jobhub/internal/app/system/normalize"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
)

// HandleLogin handles POST /login.
//
// 200 {token, user:{id,email,role}, profile}. Unknown email or wrong
// password is 400, a role the account does not hold is 403.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sess, err := h.Creds.Login(ctx, auditlog.FromRequest(r), req.Email, req.Password, normalize.Role(req.Role))
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, sess)
}
