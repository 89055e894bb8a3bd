// internal/app/features/account/register.go
package account

import (
	"context"
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/credentials"
	"github.com/dalemusser/jobhub/internal/app/system/inputval"
	"github.com/dalemusser/jobhub/internal/app/system/normalize"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleRegister handles POST /register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	req.Email = normalize.Email(req.Email)
	req.Role = normalize.Role(req.Role)
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	in := credentials.Registration{
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		FullName:       req.FullName,
		MobileNumber:   req.MobileNumber,
		CompanyName:    req.CompanyName,
		CompanyWebsite: req.CompanyWebsite,
	}
	if req.Role == models.RoleJobSeeker {
		in.Seeker = seekerSections(req)
	}

	if _, err := h.Creds.Register(ctx, auditlog.FromRequest(r), in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.Message(w, http.StatusCreated, "Registered successfully")
}

// seekerSections builds the initial profile from whatever sections the
// client sent. Entries get fresh ids and their shape normalized.
func seekerSections(req registerRequest) *models.JobSeekerProfile {
	p := &models.JobSeekerProfile{
		Resume:       req.Resume,
		ProfileImage: req.ProfileImage,
	}
	if req.BasicDetails != nil {
		p.BasicDetails = *req.BasicDetails
		if !p.BasicDetails.CurrentlyServingNotice {
			p.BasicDetails.NoticeEndDate = nil
		}
	}
	if req.ProfessionalDetails != nil {
		p.ProfessionalDetails = *req.ProfessionalDetails
	}
	if req.PersonalDetails != nil {
		p.PersonalDetails = *req.PersonalDetails
	}
	if req.Skills != nil {
		p.Skills.Technologies = normalize.List(req.Skills.Technologies)
	}
	if req.RolesAndResponsibilities != nil {
		p.RolesAndResponsibilities = *req.RolesAndResponsibilities
	}
	for _, e := range req.Education {
		e = e.Normalized()
		e.ID = primitive.NewObjectID()
		p.Education = append(p.Education, e)
	}
	for _, e := range req.EmploymentDetailsList {
		e.ID = primitive.NewObjectID()
		if e.Projects == nil {
			e.Projects = []string{}
		}
		if e.Responsibilities == nil {
			e.Responsibilities = []string{}
		}
		p.EmploymentDetailsList = append(p.EmploymentDetailsList, e)
	}
	return p
}
