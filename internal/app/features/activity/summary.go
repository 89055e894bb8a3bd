// internal/app/features/activity/summary.go
package activity

import (
	"context"
	"net/http"

	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"golang.org/x/sync/errgroup"
)

type summary struct {
	Recruiters        int64                     `json:"recruiters"`
	JobSeekers        int64                     `json:"jobSeekers"`
	JobPosts          int64                     `json:"jobPosts"`
	TotalApplications int64                     `json:"totalApplications"`
	ActiveRecruiters  int64                     `json:"activeRecruiters"`
	TotalOpenings     int64                     `json:"totalOpenings"`
	LatestJob         *recruiterstore.LatestJob `json:"latestJob"`
}

// ServeSummary handles GET /summary. The counts are gathered concurrently.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		s      summary
		totals recruiterstore.Totals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Recruiters, err = h.Recruiters.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.JobSeekers, err = h.Seekers.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		totals, err = h.Recruiters.Totals(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.LatestJob, err = h.Recruiters.Latest(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Failed to fetch summary data", err))
		return
	}

	s.JobPosts = totals.JobPosts
	s.TotalApplications = totals.Applications
	s.ActiveRecruiters = totals.ActiveRecruiters
	s.TotalOpenings = totals.Openings
	apierr.WriteJSON(w, http.StatusOK, s)
}
