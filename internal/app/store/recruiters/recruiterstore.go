package recruiterstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/appstatus"
	"github.com/dalemusser/jobhub/internal/app/system/normalize"
	"github.com/dalemusser/jobhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound          = errors.New("recruiter profile not found")
	ErrDuplicate         = errors.New("recruiter profile already exists")
	ErrJobNotFound       = errors.New("job post not found")
	ErrApplicantNotFound = errors.New("applicant not found for this job")
	ErrAlreadyApplied    = errors.New("already applied")
	// ErrStatusConflict is returned when the applicant's current status does
	// not allow the requested transition.
	ErrStatusConflict = errors.New("applicant status transition not allowed")
	// ErrRevisionMismatch is returned when a write names a revision that is
	// no longer current.
	ErrRevisionMismatch = errors.New("recruiter profile was modified concurrently")
)

// Collection is the MongoDB collection backing the store.
const Collection = "recruiter_profiles"

// Store persists recruiter profiles together with their embedded job posts
// and applicants. Every write increments the document's revision.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// IndexModels lists the indexes the store's queries rely on.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("uniq_recruiter_user").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "job_posts._id", Value: 1}},
			Options: options.Index().SetName("idx_recruiter_job_posts"),
		},
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

// Create inserts the profile for p.UserID.
func (s *Store) Create(ctx context.Context, p models.RecruiterProfile) (models.RecruiterProfile, error) {
	p.ID = primitive.NewObjectID()
	p.FullName = normalize.Name(p.FullName)
	p.Email = normalize.Email(p.Email)
	if p.ProfileImage == "" {
		p.ProfileImage = models.DefaultRecruiterImage
	}
	if p.JobPosts == nil {
		p.JobPosts = []models.JobPost{}
	}
	p.Revision = 0
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.RecruiterProfile{}, ErrDuplicate
		}
		return models.RecruiterProfile{}, fmt.Errorf("insert recruiter profile: %w", err)
	}
	return p, nil
}

// ByUserID loads the profile owned by the account.
func (s *Store) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.RecruiterProfile, error) {
	var p models.RecruiterProfile
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find recruiter profile: %w", err)
	}
	return &p, nil
}

// ByJobID loads the profile that owns the job post.
func (s *Store) ByJobID(ctx context.Context, jobID primitive.ObjectID) (*models.RecruiterProfile, error) {
	var p models.RecruiterProfile
	if err := s.c.FindOne(ctx, bson.M{"job_posts._id": jobID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("find job post: %w", err)
	}
	return &p, nil
}

// All returns every profile in insertion order.
func (s *Store) All(ctx context.Context) ([]models.RecruiterProfile, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list recruiter profiles: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.RecruiterProfile{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode recruiter profiles: %w", err)
	}
	return out, nil
}

// WithJobs returns, in insertion order, the profiles owning any of jobIDs.
func (s *Store) WithJobs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.RecruiterProfile, error) {
	out := []models.RecruiterProfile{}
	if len(jobIDs) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx,
		bson.M{"job_posts._id": bson.M{"$in": jobIDs}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find profiles by jobs: %w", err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode recruiter profiles: %w", err)
	}
	return out, nil
}

// ProfileUpdate holds the editable recruiter profile fields.
type ProfileUpdate struct {
	FullName       string
	Email          string
	PhoneNumber    string
	CompanyName    string
	CompanyWebsite string
	CompanyLogo    string
	ProfileImage   string
}

// UpdateProfile overwrites the editable fields and returns the new profile.
func (s *Store) UpdateProfile(ctx context.Context, userID primitive.ObjectID, u ProfileUpdate) (*models.RecruiterProfile, error) {
	set := bson.M{
		"full_name":       normalize.Name(u.FullName),
		"email":           normalize.Email(u.Email),
		"phone_number":    u.PhoneNumber,
		"company_name":    u.CompanyName,
		"company_website": u.CompanyWebsite,
		"company_logo":    u.CompanyLogo,
	}
	if u.ProfileImage != "" {
		set["profile_image"] = u.ProfileImage
	}
	return s.update(ctx, bson.M{"user_id": userID}, bson.M{"$set": set}, nil)
}

// SetEmailVerified marks the recruiter's email as verified.
func (s *Store) SetEmailVerified(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.update(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{"email_verified": true}}, nil)
	return err
}

// update applies upd with a revision bump and returns the document after the
// write. mongo.ErrNoDocuments is returned as is so callers can diagnose.
func (s *Store) update(ctx context.Context, filter, upd bson.M, arrayFilters []any) (*models.RecruiterProfile, error) {
	set, _ := upd["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		upd["$set"] = set
	}
	set["updated_at"] = time.Now().UTC()
	upd["$inc"] = bson.M{"revision": 1}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if len(arrayFilters) > 0 {
		opts.SetArrayFilters(options.ArrayFilters{Filters: arrayFilters})
	}
	var p models.RecruiterProfile
	err := s.c.FindOneAndUpdate(ctx, filter, upd, opts).Decode(&p)
	if err == nil {
		return &p, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, onlyUser := filter["user_id"]; onlyUser && len(filter) == 1 {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return nil, fmt.Errorf("update recruiter profile: %w", err)
}

// AddJob appends a job post with defaults applied and returns it.
func (s *Store) AddJob(ctx context.Context, userID primitive.ObjectID, j models.JobPost) (models.JobPost, error) {
	j.ID = primitive.NewObjectID()
	j.JobTitle = normalize.Name(j.JobTitle)
	if j.JobType == "" {
		j.JobType = models.JobTypeFullTime
	}
	if j.Openings <= 0 {
		j.Openings = 1
	}
	j.Skills = normalize.List(j.Skills)
	j.Applicants = []models.Applicant{}
	j.PostedAt = time.Now().UTC()

	_, err := s.update(ctx, bson.M{"user_id": userID}, bson.M{"$push": bson.M{"job_posts": j}}, nil)
	if err != nil {
		return models.JobPost{}, err
	}
	return j, nil
}

// JobUpdate lists job post fields to change. Nil fields are left untouched.
type JobUpdate struct {
	JobTitle       *string
	CompanyName    *string
	CompanyLogo    *string
	Salary         *string
	Experience     *string
	Location       *string
	Description    *string
	JobType        *string
	Remote         *bool
	Skills         []string
	RecruiterEmail *string
	Openings       *int
}

func (u JobUpdate) fields() bson.M {
	set := bson.M{}
	put := func(field string, v *string) {
		if v != nil {
			set["job_posts.$."+field] = *v
		}
	}
	if u.JobTitle != nil {
		set["job_posts.$.job_title"] = normalize.Name(*u.JobTitle)
	}
	put("company_name", u.CompanyName)
	put("company_logo", u.CompanyLogo)
	put("salary", u.Salary)
	put("experience", u.Experience)
	put("location", u.Location)
	put("description", u.Description)
	put("job_type", u.JobType)
	put("recruiter_email", u.RecruiterEmail)
	if u.Remote != nil {
		set["job_posts.$.remote"] = *u.Remote
	}
	if u.Skills != nil {
		set["job_posts.$.skills"] = normalize.List(u.Skills)
	}
	if u.Openings != nil {
		set["job_posts.$.openings"] = *u.Openings
	}
	return set
}

// UpdateJob applies u to one of the recruiter's job posts. When revision is
// non-nil the write only succeeds if the profile is still at that revision.
func (s *Store) UpdateJob(ctx context.Context, userID, jobID primitive.ObjectID, u JobUpdate, revision *int64) (*models.JobPost, error) {
	filter := bson.M{"user_id": userID, "job_posts._id": jobID}
	if revision != nil {
		filter["revision"] = *revision
	}
	p, err := s.update(ctx, filter, bson.M{"$set": u.fields()}, nil)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, s.diagnose(ctx, userID, jobID, revision)
	}
	if err != nil {
		return nil, err
	}
	j, _ := p.JobPost(jobID)
	return j, nil
}

// DeleteJob removes one of the recruiter's job posts with its applicants.
func (s *Store) DeleteJob(ctx context.Context, userID, jobID primitive.ObjectID) error {
	_, err := s.update(ctx,
		bson.M{"user_id": userID, "job_posts._id": jobID},
		bson.M{"$pull": bson.M{"job_posts": bson.M{"_id": jobID}}},
		nil,
	)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return s.diagnose(ctx, userID, jobID, nil)
	}
	return err
}

// diagnose explains why a write scoped to (userID, jobID) matched nothing.
func (s *Store) diagnose(ctx context.Context, userID, jobID primitive.ObjectID, revision *int64) error {
	p, err := s.ByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := p.JobPost(jobID); !ok {
		return ErrJobNotFound
	}
	if revision != nil && p.Revision != *revision {
		return ErrRevisionMismatch
	}
	return fmt.Errorf("update job post %s: no document matched", jobID.Hex())
}

// Apply adds a to the job post's applicants. The duplicate check and the push
// happen in one conditional update, so a concurrent second apply by the same
// user cannot both succeed.
func (s *Store) Apply(ctx context.Context, jobID primitive.ObjectID, a models.Applicant) (models.Applicant, error) {
	a.ApplicationStatus = string(appstatus.Initial)
	a.AppliedAt = time.Now().UTC()

	filter := bson.M{"job_posts": bson.M{"$elemMatch": bson.M{
		"_id":                jobID,
		"applicants.user_id": bson.M{"$ne": a.UserID},
	}}}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{"job_posts.$.applicants": a},
		"$set":  bson.M{"updated_at": a.AppliedAt},
		"$inc":  bson.M{"revision": 1},
	})
	if err != nil {
		return models.Applicant{}, fmt.Errorf("apply to job: %w", err)
	}
	if res.MatchedCount > 0 {
		return a, nil
	}

	n, err := s.c.CountDocuments(ctx, bson.M{"job_posts._id": jobID})
	if err != nil {
		return models.Applicant{}, fmt.Errorf("count job post: %w", err)
	}
	if n == 0 {
		return models.Applicant{}, ErrJobNotFound
	}
	return models.Applicant{}, ErrAlreadyApplied
}

// HasApplied reports whether userID has applied to the job post.
func (s *Store) HasApplied(ctx context.Context, jobID, userID primitive.ObjectID) (bool, error) {
	p, err := s.ByJobID(ctx, jobID)
	if err != nil {
		return false, err
	}
	j, _ := p.JobPost(jobID)
	_, ok := j.Applicant(userID)
	return ok, nil
}

// SetApplicantStatus moves an applicant of one of the recruiter's job posts to
// status to. The write only applies when the applicant's current status may
// transition to to; otherwise ErrStatusConflict is returned.
func (s *Store) SetApplicantStatus(ctx context.Context, userID, jobID, applicantID primitive.ObjectID, to appstatus.Status) (*models.RecruiterProfile, error) {
	from := appstatus.From(to)
	if len(from) == 0 {
		return nil, ErrStatusConflict
	}

	filter := bson.M{
		"user_id": userID,
		"job_posts": bson.M{"$elemMatch": bson.M{
			"_id": jobID,
			"applicants": bson.M{"$elemMatch": bson.M{
				"user_id":            applicantID,
				"application_status": bson.M{"$in": from},
			}},
		}},
	}
	upd := bson.M{"$set": bson.M{
		"job_posts.$[j].applicants.$[a].application_status": string(to),
	}}
	arrayFilters := []any{
		bson.M{"j._id": jobID},
		bson.M{"a.user_id": applicantID, "a.application_status": bson.M{"$in": from}},
	}

	p, err := s.update(ctx, filter, upd, arrayFilters)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	p, err = s.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	j, ok := p.JobPost(jobID)
	if !ok {
		return nil, ErrJobNotFound
	}
	if _, ok := j.Applicant(applicantID); !ok {
		return nil, ErrApplicantNotFound
	}
	return nil, ErrStatusConflict
}

// AppliedJobs returns every job post userID has applied to, in scan order.
func (s *Store) AppliedJobs(ctx context.Context, userID primitive.ObjectID) ([]models.JobPost, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"job_posts.applicants.user_id": userID}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$unwind", Value: "$job_posts"}},
		{{Key: "$match", Value: bson.M{"job_posts.applicants.user_id": userID}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$job_posts"}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate applied jobs: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.JobPost{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode applied jobs: %w", err)
	}
	return out, nil
}

// CountApplications returns the number of job posts userID has applied to.
func (s *Store) CountApplications(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"job_posts.applicants.user_id": userID}}},
		{{Key: "$unwind", Value: "$job_posts"}},
		{{Key: "$match", Value: bson.M{"job_posts.applicants.user_id": userID}}},
		{{Key: "$count", Value: "count"}},
	}
	var rows []struct {
		Count int64 `bson:"count"`
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate application count: %w", err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode application count: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

// Count returns the number of recruiter profiles.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Totals summarizes job posting activity across all recruiters.
type Totals struct {
	JobPosts         int64
	Applications     int64
	ActiveRecruiters int64
	Openings         int64
}

// Totals computes counts of job posts, applicants, recruiters with at least
// one post, and openings.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"posts": bson.M{"$size": bson.M{"$ifNull": bson.A{"$job_posts", bson.A{}}}},
			"applicants": bson.M{"$sum": bson.M{"$map": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$job_posts", bson.A{}}},
				"as":    "j",
				"in":    bson.M{"$size": bson.M{"$ifNull": bson.A{"$$j.applicants", bson.A{}}}},
			}}},
			"openings": bson.M{"$sum": "$job_posts.openings"},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"jobPosts":     bson.M{"$sum": "$posts"},
			"applications": bson.M{"$sum": "$applicants"},
			"openings":     bson.M{"$sum": "$openings"},
			"active": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$posts", 0}}, 1, 0,
			}}},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return Totals{}, fmt.Errorf("aggregate totals: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		JobPosts     int64 `bson:"jobPosts"`
		Applications int64 `bson:"applications"`
		Openings     int64 `bson:"openings"`
		Active       int64 `bson:"active"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return Totals{}, fmt.Errorf("decode totals: %w", err)
	}
	if len(rows) == 0 {
		return Totals{}, nil
	}
	r := rows[0]
	return Totals{
		JobPosts:         r.JobPosts,
		Applications:     r.Applications,
		ActiveRecruiters: r.Active,
		Openings:         r.Openings,
	}, nil
}

// LatestJob identifies the most recently posted job and its recruiter.
type LatestJob struct {
	JobTitle  string    `bson:"jobTitle" json:"jobTitle"`
	PostedAt  time.Time `bson:"postedAt" json:"postedAt"`
	Recruiter string    `bson:"recruiter" json:"recruiter"`
}

// Latest returns the most recently posted job, or nil when there are none.
func (s *Store) Latest(ctx context.Context) (*LatestJob, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$job_posts"}},
		{{Key: "$sort", Value: bson.D{{Key: "job_posts.posted_at", Value: -1}}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"jobTitle":  "$job_posts.job_title",
			"postedAt":  "$job_posts.posted_at",
			"recruiter": "$full_name",
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate latest job: %w", err)
	}
	defer cur.Close(ctx)

	var rows []LatestJob
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode latest job: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
