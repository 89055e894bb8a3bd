// Package jobmatch selects job postings for recommendation and search.
//
// Recommendation is recall oriented: a posting qualifies when any loose
// predicate holds, results are capped, and fresher postings are the fallback
// tier. Search is precision oriented: every supplied filter must hold and the
// full result set is returned.
//
// All comparisons go through Normalize so recommendation and search agree on
// case and whitespace.
package jobmatch

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendLimit caps the number of recommended postings.
const RecommendLimit = 10

// Normalize lower-cases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Posting is a job post together with the recruiter that owns it.
type Posting struct {
	models.JobPost
	RecruiterID primitive.ObjectID `json:"-"`
	// Company is the name shown on listings: the recruiter's company, then
	// the post's own company, then a placeholder.
	Company string `json:"-"`
}

// Flatten lists every post of every profile, preserving profile order and
// then array order.
func Flatten(profiles []models.RecruiterProfile) []Posting {
	var out []Posting
	for i := range profiles {
		p := &profiles[i]
		for j := range p.JobPosts {
			job := &p.JobPosts[j]
			out = append(out, Posting{
				JobPost:     *job,
				RecruiterID: p.ID,
				Company:     p.DisplayCompany(job),
			})
		}
	}
	return out
}

// Predicate decides whether a posting qualifies.
type Predicate func(p *Posting) bool

// AnyOf holds when at least one predicate holds. With no predicates it never holds.
func AnyOf(ps ...Predicate) Predicate {
	return func(p *Posting) bool {
		for _, pred := range ps {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// AllOf holds when every predicate holds. With no predicates it always holds.
func AllOf(ps ...Predicate) Predicate {
	return func(p *Posting) bool {
		for _, pred := range ps {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Filter returns postings satisfying pred in input order, stopping after
// limit results when limit > 0.
func Filter(postings []Posting, pred Predicate, limit int) []Posting {
	out := make([]Posting, 0)
	for i := range postings {
		if limit > 0 && len(out) == limit {
			break
		}
		if pred(&postings[i]) {
			out = append(out, postings[i])
		}
	}
	return out
}

// SortByPostedDesc orders postings newest first, keeping input order for ties.
func SortByPostedDesc(postings []Posting) {
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].PostedAt.After(postings[j].PostedAt)
	})
}

// Latest returns the n most recently posted postings.
func Latest(postings []Posting, n int) []Posting {
	out := append([]Posting(nil), postings...)
	SortByPostedDesc(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

/* ------------------------------ predicates ------------------------------- */

// TitleContains holds when the normalized title contains the normalized term.
// An empty term never matches.
func TitleContains(term string) Predicate {
	term = Normalize(term)
	return func(p *Posting) bool {
		return term != "" && strings.Contains(Normalize(p.JobTitle), term)
	}
}

// LocationContains holds when the normalized location contains the term.
// An empty term never matches.
func LocationContains(term string) Predicate {
	term = Normalize(term)
	return func(p *Posting) bool {
		return term != "" && strings.Contains(Normalize(p.Location), term)
	}
}

// SharesSkill holds when some normalized job skill equals one of skills,
// which must already be normalized.
func SharesSkill(skills []string) Predicate {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return func(p *Posting) bool {
		for _, s := range p.Skills {
			if _, ok := set[Normalize(s)]; ok {
				return true
			}
		}
		return false
	}
}

// IsFresher holds for entry-level postings.
func IsFresher(p *Posting) bool {
	return Normalize(p.Experience) == "fresher" || strings.Contains(Normalize(p.JobTitle), "fresher")
}

/* ---------------------------- recommendation ----------------------------- */

// Skill is a seeker skill as sent by clients: either "Go" or {"name": "Go"}.
// Any other shape decodes to an empty skill, which matching ignores.
type Skill string

func (s *Skill) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = Skill(str)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		*s = ""
		return nil
	}
	*s = Skill(obj.Name)
	return nil
}

// Criteria is what a seeker offers for recommendations.
type Criteria struct {
	Designation string  `json:"designation"`
	Location    string  `json:"location"`
	Skills      []Skill `json:"skills"`
}

// NormalizedSkills returns the non-empty normalized skills.
func (c Criteria) NormalizedSkills() []string {
	out := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		if n := Normalize(string(s)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Empty reports whether the criteria carry nothing to match on.
func (c Criteria) Empty() bool {
	return Normalize(c.Designation) == "" && Normalize(c.Location) == "" && len(c.NormalizedSkills()) == 0
}

// Matcher is the recall predicate for c.
func (c Criteria) Matcher() Predicate {
	return AnyOf(
		TitleContains(c.Designation),
		LocationContains(c.Location),
		SharesSkill(c.NormalizedSkills()),
	)
}

// Recommend returns up to RecommendLimit postings matching c in scan order.
// When c is empty or nothing matches, it returns up to RecommendLimit
// fresher postings instead. An empty result is valid.
func Recommend(postings []Posting, c Criteria) []Posting {
	if !c.Empty() {
		if matched := Filter(postings, c.Matcher(), RecommendLimit); len(matched) > 0 {
			return matched
		}
	}
	return Filter(postings, IsFresher, RecommendLimit)
}
