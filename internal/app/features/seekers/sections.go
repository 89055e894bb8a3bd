// internal/app/features/seekers/sections.go
package seekers

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/jobmatch"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// updated writes {"message": msg, "user": p}.
func updated(w http.ResponseWriter, msg string, p *models.JobSeekerProfile) {
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"message": msg, "user": p})
}

// basicRequest accepts "experiences" as well as "experience"; older
// clients send the plural.
type basicRequest struct {
	Location               string     `json:"location"`
	Experience             string     `json:"experience"`
	Experiences            string     `json:"experiences"`
	CTC                    string     `json:"ctc"`
	ExpectedCTC            string     `json:"expectedCtc"`
	NoticePeriod           string     `json:"noticePeriod"`
	CurrentlyServingNotice bool       `json:"currentlyServingNotice"`
	NoticeEndDate          *time.Time `json:"noticeEndDate"`
}

// HandleBasic handles PUT /basic.
func (h *Handler) HandleBasic(w http.ResponseWriter, r *http.Request) {
	var req basicRequest
	h.updateSection(w, r, &req, "Basic details updated", func(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error) {
		exp := req.Experience
		if exp == "" {
			exp = req.Experiences
		}
		return h.Seekers.UpdateBasic(ctx, userID, models.BasicDetails{
			Location:               req.Location,
			Experience:             exp,
			CTC:                    req.CTC,
			ExpectedCTC:            req.ExpectedCTC,
			NoticePeriod:           req.NoticePeriod,
			CurrentlyServingNotice: req.CurrentlyServingNotice,
			NoticeEndDate:          req.NoticeEndDate,
		})
	})
}

// HandleProfessional handles PUT /professional.
func (h *Handler) HandleProfessional(w http.ResponseWriter, r *http.Request) {
	var req models.ProfessionalDetails
	h.updateSection(w, r, &req, "Professional details updated", func(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error) {
		return h.Seekers.UpdateProfessional(ctx, userID, req)
	})
}

// HandlePersonal handles PUT /personal.
func (h *Handler) HandlePersonal(w http.ResponseWriter, r *http.Request) {
	var req models.PersonalDetails
	h.updateSection(w, r, &req, "Personal details updated", func(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error) {
		return h.Seekers.UpdatePersonal(ctx, userID, req)
	})
}

type skillsRequest struct {
	Skills []jobmatch.Skill `json:"skills"`
}

// HandleSkills handles PUT /skills. Skills may be strings or {"name": ...}.
func (h *Handler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	var req skillsRequest
	h.updateSection(w, r, &req, "Skills updated", func(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error) {
		skills := make([]string, 0, len(req.Skills))
		for _, s := range req.Skills {
			skills = append(skills, string(s))
		}
		return h.Seekers.UpdateSkills(ctx, userID, skills)
	})
}

type rolesRequest struct {
	Summaries *[]string `json:"summaries"`
}

// HandleRoles handles PUT /roles.
func (h *Handler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	var req rolesRequest
	h.updateSection(w, r, &req, "Roles updated", func(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error) {
		if req.Summaries == nil {
			return nil, apierr.Invalid("Summaries must be an array")
		}
		return h.Seekers.UpdateRoles(ctx, userID, *req.Summaries)
	})
}

// updateSection decodes into req, runs apply for the caller, and writes the
// updated profile under msg.
func (h *Handler) updateSection(w http.ResponseWriter, r *http.Request, req any, msg string,
	apply func(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error)) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	if err := apierr.Decode(r, req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := apply(ctx, userID)
	if err != nil {
		if apierr.Is(err, apierr.KindInvalid) {
			apierr.Write(w, h.Log, err)
			return
		}
		apierr.Write(w, h.Log, storeErr(err, ""))
		return
	}
	updated(w, msg, p)
}
