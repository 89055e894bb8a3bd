package jobmatch_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/jobmatch"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func posting(title, location, experience string, skills ...string) jobmatch.Posting {
	return jobmatch.Posting{
		JobPost: models.JobPost{
			ID:         primitive.NewObjectID(),
			JobTitle:   title,
			Location:   location,
			Experience: experience,
			Skills:     skills,
			JobType:    models.JobTypeFullTime,
		},
	}
}

func titles(ps []jobmatch.Posting) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.JobTitle)
	}
	return out
}

func TestNormalize(t *testing.T) {
	if got := jobmatch.Normalize("  Go Developer \t"); got != "go developer" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestRecommend_MatchesAnyPredicate(t *testing.T) {
	postings := []jobmatch.Posting{
		posting("Backend Engineer", "Pune", "3 years", "Go"),
		posting("Frontend Engineer", "Chennai", "2 years", "react"),
		posting("Data Analyst", "Mumbai", "1 year", "SQL"),
		posting("QA Engineer", "Delhi", "2 years", "Selenium"),
	}
	c := jobmatch.Criteria{
		Designation: "backend",
		Location:    "mumbai",
		Skills:      []jobmatch.Skill{"React"},
	}

	got := titles(jobmatch.Recommend(postings, c))
	want := []string{"Backend Engineer", "Frontend Engineer", "Data Analyst"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend = %v, want %v", got, want)
	}
}

func TestRecommend_CapsAtTen(t *testing.T) {
	var postings []jobmatch.Posting
	for i := 0; i < 25; i++ {
		postings = append(postings, posting(fmt.Sprintf("Go Developer %d", i), "Remote", "2 years"))
	}

	got := jobmatch.Recommend(postings, jobmatch.Criteria{Designation: "go developer"})
	if len(got) != jobmatch.RecommendLimit {
		t.Fatalf("len = %d, want %d", len(got), jobmatch.RecommendLimit)
	}
	if got[0].JobTitle != "Go Developer 0" || got[9].JobTitle != "Go Developer 9" {
		t.Errorf("expected the first ten in scan order, got %v", titles(got))
	}
}

func TestRecommend_FresherFallback(t *testing.T) {
	postings := []jobmatch.Posting{
		posting("Senior Architect", "Pune", "10 years", "Java"),
		posting("Graduate Trainee", "Pune", " Fresher ", "Java"),
		posting("Fresher Support Engineer", "Delhi", "0-1 years"),
	}

	t.Run("no match", func(t *testing.T) {
		got := titles(jobmatch.Recommend(postings, jobmatch.Criteria{Designation: "plumber"}))
		want := []string{"Graduate Trainee", "Fresher Support Engineer"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Recommend = %v, want %v", got, want)
		}
	})

	t.Run("empty criteria", func(t *testing.T) {
		c := jobmatch.Criteria{Designation: "  ", Skills: []jobmatch.Skill{"", " "}}
		got := titles(jobmatch.Recommend(postings, c))
		want := []string{"Graduate Trainee", "Fresher Support Engineer"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Recommend = %v, want %v", got, want)
		}
	})

	t.Run("nothing at all", func(t *testing.T) {
		got := jobmatch.Recommend([]jobmatch.Posting{posting("Architect", "Pune", "10 years")}, jobmatch.Criteria{})
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", titles(got))
		}
	})
}

func TestRecommend_SkillCaseInsensitive(t *testing.T) {
	postings := []jobmatch.Posting{posting("Web Developer", "Remote", "2 years", "react")}

	var c jobmatch.Criteria
	if err := json.Unmarshal([]byte(`{"skills":[{"name":"React"}]}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := jobmatch.Recommend(postings, c)
	if len(got) != 1 || got[0].JobTitle != "Web Developer" {
		t.Errorf("Recommend = %v, want [Web Developer]", titles(got))
	}
}

func TestSkill_UnmarshalBothShapes(t *testing.T) {
	var skills []jobmatch.Skill
	if err := json.Unmarshal([]byte(`["Go", {"name": "Rust"}]`), &skills); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []jobmatch.Skill{"Go", "Rust"}
	if !reflect.DeepEqual(skills, want) {
		t.Errorf("skills = %v, want %v", skills, want)
	}
}

func TestCriteria_IgnoresOddSkillShapes(t *testing.T) {
	var c jobmatch.Criteria
	body := `{"designation": "Dev", "skills": ["React", {"name": "Go"}, 5, null, true]}`
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"react", "go"}
	if got := c.NormalizedSkills(); !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizedSkills = %v, want %v", got, want)
	}
}

func TestAnyOfAllOf(t *testing.T) {
	yes := func(*jobmatch.Posting) bool { return true }
	no := func(*jobmatch.Posting) bool { return false }
	p := posting("x", "y", "z")

	if jobmatch.AnyOf()(&p) {
		t.Error("AnyOf() should never hold")
	}
	if !jobmatch.AllOf()(&p) {
		t.Error("AllOf() should always hold")
	}
	if !jobmatch.AnyOf(no, yes)(&p) || jobmatch.AllOf(yes, no)(&p) {
		t.Error("combinators disagree with their definitions")
	}
}

func TestFlatten_ScanOrderAndCompanyFallback(t *testing.T) {
	profiles := []models.RecruiterProfile{
		{
			ID:          primitive.NewObjectID(),
			CompanyName: "Acme",
			JobPosts:    []models.JobPost{{JobTitle: "A1", CompanyName: "Ignored"}, {JobTitle: "A2"}},
		},
		{
			ID:       primitive.NewObjectID(),
			JobPosts: []models.JobPost{{JobTitle: "B1", CompanyName: "Beta"}, {JobTitle: "B2"}},
		},
	}

	got := jobmatch.Flatten(profiles)
	if !reflect.DeepEqual(titles(got), []string{"A1", "A2", "B1", "B2"}) {
		t.Fatalf("order = %v", titles(got))
	}
	companies := []string{got[0].Company, got[1].Company, got[2].Company, got[3].Company}
	want := []string{"Acme", "Acme", "Beta", models.CompanyNotProvided}
	if !reflect.DeepEqual(companies, want) {
		t.Errorf("companies = %v, want %v", companies, want)
	}
	if got[2].RecruiterID != profiles[1].ID {
		t.Error("RecruiterID not carried")
	}
}

func TestLatest(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var postings []jobmatch.Posting
	for i := 0; i < 12; i++ {
		p := posting(fmt.Sprintf("job %d", i), "", "")
		p.PostedAt = base.Add(time.Duration(i) * time.Hour)
		postings = append(postings, p)
	}

	got := jobmatch.Latest(postings, 10)
	if len(got) != 10 || got[0].JobTitle != "job 11" || got[9].JobTitle != "job 2" {
		t.Errorf("Latest = %v", titles(got))
	}
	if postings[0].JobTitle != "job 0" {
		t.Error("Latest must not reorder its input")
	}
}
