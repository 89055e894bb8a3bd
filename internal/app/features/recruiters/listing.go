// internal/app/features/recruiters/listing.go
package recruiters

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recruiterOpenings struct {
	models.RecruiterProfile
	TotalOpenings int `json:"totalOpenings"`
}

// ServeAllWithOpenings handles GET /all-with-openings: every recruiter with
// the sum of openings across their posts, plus the grand total.
func (h *Handler) ServeAllWithOpenings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profiles, err := h.Recruiters.All(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Internal server error", err))
		return
	}

	out := make([]recruiterOpenings, 0, len(profiles))
	grand := 0
	for _, p := range profiles {
		total := 0
		for _, j := range p.JobPosts {
			if j.Openings > 0 {
				total += j.Openings
			}
		}
		grand += total
		out = append(out, recruiterOpenings{RecruiterProfile: p, TotalOpenings: total})
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"recruiters":         out,
		"grandTotalOpenings": grand,
	})
}

// summaryRow is one job post flattened with its recruiter's details.
type summaryRow struct {
	RecruiterName  string     `json:"recruiterName"`
	Email          string     `json:"email"`
	ProfileImage   string     `json:"profileImage"`
	CompanyName    string     `json:"companyName"`
	CompanyWebsite string     `json:"companyWebsite"`
	EmailVerified  bool       `json:"emailVerified"`
	Status         string     `json:"status"`
	JobTitle       string     `json:"jobTitle"`
	ApplicantCount int        `json:"applicantCount"`
	JobType        string     `json:"jobType"`
	Location       string     `json:"location"`
	Salary         string     `json:"salary"`
	Experience     string     `json:"experience"`
	Openings       int        `json:"openings"`
	PostedAt       *time.Time `json:"postedAt"`
	Skills         []string   `json:"skills"`
	Description    string     `json:"description"`
}

const na = "N/A"

// ServeSummary handles GET /summary: all job posts, newest first.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	profiles, err := h.Recruiters.All(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Error fetching recruiters summary", err))
		return
	}
	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	emails, err := h.Accounts.EmailsByIDs(ctx, ids)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Error fetching recruiters summary", err))
		return
	}

	rows := []summaryRow{}
	for _, p := range profiles {
		status := "Pending"
		if p.EmailVerified {
			status = "Verified"
		}
		for _, j := range p.JobPosts {
			row := summaryRow{
				RecruiterName:  notify.FirstNonEmpty(p.FullName, "Unknown"),
				Email:          notify.FirstNonEmpty(emails[p.UserID], na),
				ProfileImage:   p.ProfileImage,
				CompanyName:    notify.FirstNonEmpty(j.CompanyName, p.CompanyName, na),
				CompanyWebsite: notify.FirstNonEmpty(p.CompanyWebsite, na),
				EmailVerified:  p.EmailVerified,
				Status:         status,
				JobTitle:       notify.FirstNonEmpty(j.JobTitle, "No Job Title"),
				ApplicantCount: len(j.Applicants),
				JobType:        notify.FirstNonEmpty(j.JobType, na),
				Location:       notify.FirstNonEmpty(j.Location, na),
				Salary:         notify.FirstNonEmpty(j.Salary, na),
				Experience:     notify.FirstNonEmpty(j.Experience, na),
				Openings:       j.Openings,
				Skills:         j.Skills,
				Description:    notify.FirstNonEmpty(j.Description, na),
			}
			if row.Skills == nil {
				row.Skills = []string{}
			}
			if !j.PostedAt.IsZero() {
				t := j.PostedAt
				row.PostedAt = &t
			}
			rows = append(rows, row)
		}
	}

	// Posts without a date sort last.
	sort.SliceStable(rows, func(i, k int) bool {
		a, b := rows[i].PostedAt, rows[k].PostedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	apierr.WriteJSON(w, http.StatusOK, rows)
}
