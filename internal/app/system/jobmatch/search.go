package jobmatch

import (
	"encoding/json"
	"regexp"
	"strings"
)

// SearchFilter is the listing filter behind GET /api/jobs. Search is a
// case-insensitive substring of the title or company; every other field is
// exact equality. Empty fields do not constrain.
type SearchFilter struct {
	Search     string
	Location   string
	Experience string
	JobType    string
	Salary     string
	Company    string
}

func equals(want string, field func(*Posting) string) Predicate {
	return func(p *Posting) bool { return field(p) == want }
}

// Predicate is the conjunction of the supplied filters.
func (f SearchFilter) Predicate() Predicate {
	var ps []Predicate
	if term := Normalize(f.Search); term != "" {
		ps = append(ps, func(p *Posting) bool {
			return strings.Contains(Normalize(p.JobTitle), term) || strings.Contains(Normalize(p.Company), term)
		})
	}
	if f.Location != "" {
		ps = append(ps, equals(f.Location, func(p *Posting) string { return p.Location }))
	}
	if f.Experience != "" {
		ps = append(ps, equals(f.Experience, func(p *Posting) string { return p.Experience }))
	}
	if f.JobType != "" {
		ps = append(ps, equals(f.JobType, func(p *Posting) string { return p.JobType }))
	}
	if f.Salary != "" {
		ps = append(ps, equals(f.Salary, func(p *Posting) string { return p.Salary }))
	}
	if f.Company != "" {
		ps = append(ps, equals(f.Company, func(p *Posting) string { return p.Company }))
	}
	return AllOf(ps...)
}

// Search returns every posting satisfying f, in scan order.
func Search(postings []Posting, f SearchFilter) []Posting {
	return Filter(postings, f.Predicate(), 0)
}

// Terms accepts either a JSON list of strings or a single comma-separated string.
type Terms []string

func (t *Terms) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = cleanTerms(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = cleanTerms(strings.Split(s, ","))
	return nil
}

func cleanTerms(in []string) Terms {
	out := make(Terms, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Category values for DesignationQuery.
const (
	CategoryJob        = "job"
	CategoryInternship = "internship"
)

// DesignationQuery is the body of POST /api/jobs/search.
//
// Every term must match the title, a skill, or the description. Terms are
// case-insensitive regular expressions; a term that does not compile is
// matched literally. A query without terms matches nothing.
type DesignationQuery struct {
	Designation Terms  `json:"designation"`
	Location    string `json:"location"`
	Category    string `json:"type"`
}

func compileLoose(term string) *regexp.Regexp {
	if re, err := regexp.Compile("(?i)" + term); err == nil {
		return re
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
}

func matchesAnyField(re *regexp.Regexp) Predicate {
	return func(p *Posting) bool {
		if re.MatchString(Normalize(p.JobTitle)) || re.MatchString(Normalize(p.Description)) {
			return true
		}
		for _, s := range p.Skills {
			if re.MatchString(Normalize(s)) {
				return true
			}
		}
		return false
	}
}

func inCategory(category string) Predicate {
	switch Normalize(category) {
	case CategoryJob:
		return func(p *Posting) bool {
			switch Normalize(p.JobType) {
			case "full-time", "part-time", "contract":
				return true
			}
			return false
		}
	case CategoryInternship:
		return func(p *Posting) bool { return Normalize(p.JobType) == "internship" }
	}
	return func(*Posting) bool { return true }
}

// Predicate builds the conjunctive matcher for q.
func (q DesignationQuery) Predicate() Predicate {
	terms := cleanTerms(q.Designation)
	if len(terms) == 0 {
		return func(*Posting) bool { return false }
	}
	ps := make([]Predicate, 0, len(terms)+2)
	for _, t := range terms {
		ps = append(ps, matchesAnyField(compileLoose(t)))
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		re := compileLoose(loc)
		ps = append(ps, func(p *Posting) bool { return re.MatchString(Normalize(p.Location)) })
	}
	ps = append(ps, inCategory(q.Category))
	return AllOf(ps...)
}

// SearchDesignation returns postings matching q, newest first.
func SearchDesignation(postings []Posting, q DesignationQuery) []Posting {
	out := Filter(postings, q.Predicate(), 0)
	SortByPostedDesc(out)
	return out
}
