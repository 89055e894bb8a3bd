package seekerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/normalize"
	"github.com/dalemusser/jobhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when the account has no job seeker profile.
	ErrNotFound = errors.New("job seeker profile not found")
	// ErrEntryNotFound is returned when an education or employment id does
	// not exist on the profile.
	ErrEntryNotFound = errors.New("profile entry not found")
	// ErrDuplicate is returned when the account already has a profile.
	ErrDuplicate = errors.New("job seeker profile already exists")
)

// Collection is the MongoDB collection backing the store.
const Collection = "jobseeker_profiles"

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
			Options: options.Index().SetName("uniq_seeker_user").SetUnique(true),
		},
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

// Create inserts the profile for p.UserID with empty collections filled in.
func (s *Store) Create(ctx context.Context, p models.JobSeekerProfile) (models.JobSeekerProfile, error) {
	p.ID = primitive.NewObjectID()
	p.FullName = normalize.Name(p.FullName)
	if p.PersonalDetails.Languages == nil {
		p.PersonalDetails.Languages = []string{}
	}
	if p.Skills.Technologies == nil {
		p.Skills.Technologies = []string{}
	}
	if p.RolesAndResponsibilities.Summaries == nil {
		p.RolesAndResponsibilities.Summaries = []string{}
	}
	if p.Education == nil {
		p.Education = []models.Education{}
	}
	if p.EmploymentDetailsList == nil {
		p.EmploymentDetailsList = []models.Employment{}
	}
	if p.SavedJobs == nil {
		p.SavedJobs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JobSeekerProfile{}, ErrDuplicate
		}
		return models.JobSeekerProfile{}, fmt.Errorf("insert seeker profile: %w", err)
	}
	return p, nil
}

// ByUserID loads the profile owned by the account.
func (s *Store) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error) {
	return s.find(ctx, userID, nil)
}

// BasicDetails loads only the name and basic details.
func (s *Store) BasicDetails(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error) {
	return s.find(ctx, userID, bson.M{"full_name": 1, "basic_details": 1, "user_id": 1})
}

func (s *Store) find(ctx context.Context, userID primitive.ObjectID, projection bson.M) (*models.JobSeekerProfile, error) {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	var p models.JobSeekerProfile
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find seeker profile: %w", err)
	}
	return &p, nil
}

// update applies upd to the document matching filter and returns the result.
// When nothing matches, it tells a missing profile from a missing entry.
func (s *Store) update(ctx context.Context, userID primitive.ObjectID, filter bson.M, upd bson.M) (*models.JobSeekerProfile, error) {
	if filter == nil {
		filter = bson.M{}
	}
	filter["user_id"] = userID

	set, _ := upd["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		upd["$set"] = set
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.JobSeekerProfile
	err := s.c.FindOneAndUpdate(ctx, filter, upd, opts).Decode(&p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update seeker profile: %w", err)
	}
	if len(filter) == 1 {
		return nil, ErrNotFound
	}
	n, cerr := s.c.CountDocuments(ctx, bson.M{"user_id": userID})
	if cerr != nil {
		return nil, fmt.Errorf("count seeker profile: %w", cerr)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrEntryNotFound
}

// UpdateBasic replaces the basic details. The notice end date is kept only
// while the seeker is serving notice.
func (s *Store) UpdateBasic(ctx context.Context, userID primitive.ObjectID, d models.BasicDetails) (*models.JobSeekerProfile, error) {
	if !d.CurrentlyServingNotice {
		d.NoticeEndDate = nil
	}
	return s.update(ctx, userID, nil, bson.M{"$set": bson.M{"basic_details": d}})
}

// UpdateProfessional replaces the professional details.
func (s *Store) UpdateProfessional(ctx context.Context, userID primitive.ObjectID, d models.ProfessionalDetails) (*models.JobSeekerProfile, error) {
	return s.update(ctx, userID, nil, bson.M{"$set": bson.M{"professional_details": d}})
}

// UpdatePersonal replaces the personal details.
func (s *Store) UpdatePersonal(ctx context.Context, userID primitive.ObjectID, d models.PersonalDetails) (*models.JobSeekerProfile, error) {
	if d.Languages == nil {
		d.Languages = []string{}
	}
	return s.update(ctx, userID, nil, bson.M{"$set": bson.M{"personal_details": d}})
}

// UpdateSkills replaces the technology list.
func (s *Store) UpdateSkills(ctx context.Context, userID primitive.ObjectID, skills []string) (*models.JobSeekerProfile, error) {
	return s.update(ctx, userID, nil, bson.M{"$set": bson.M{"skills.technologies": normalize.List(skills)}})
}

// UpdateRoles replaces the roles and responsibilities summaries.
func (s *Store) UpdateRoles(ctx context.Context, userID primitive.ObjectID, summaries []string) (*models.JobSeekerProfile, error) {
	if summaries == nil {
		summaries = []string{}
	}
	return s.update(ctx, userID, nil, bson.M{"$set": bson.M{"roles_and_responsibilities.summaries": summaries}})
}

// AddEducation appends an education entry and returns it with its new id.
func (s *Store) AddEducation(ctx context.Context, userID primitive.ObjectID, e models.Education) (models.Education, error) {
	e = e.Normalized()
	e.ID = primitive.NewObjectID()
	if _, err := s.update(ctx, userID, nil, bson.M{"$push": bson.M{"education": e}}); err != nil {
		return models.Education{}, err
	}
	return e, nil
}

// UpdateEducation replaces the entry with the given id.
func (s *Store) UpdateEducation(ctx context.Context, userID, id primitive.ObjectID, e models.Education) (models.Education, error) {
	e = e.Normalized()
	e.ID = id
	_, err := s.update(ctx, userID,
		bson.M{"education._id": id},
		bson.M{"$set": bson.M{"education.$": e}})
	if err != nil {
		return models.Education{}, err
	}
	return e, nil
}

// DeleteEducation removes the entry with the given id.
func (s *Store) DeleteEducation(ctx context.Context, userID, id primitive.ObjectID) (*models.JobSeekerProfile, error) {
	return s.update(ctx, userID,
		bson.M{"education._id": id},
		bson.M{"$pull": bson.M{"education": bson.M{"_id": id}}})
}

// AddEmployment appends an employment entry and returns it with its new id.
func (s *Store) AddEmployment(ctx context.Context, userID primitive.ObjectID, e models.Employment) (models.Employment, error) {
	e.ID = primitive.NewObjectID()
	fillEmployment(&e)
	if _, err := s.update(ctx, userID, nil, bson.M{"$push": bson.M{"employment_details_list": e}}); err != nil {
		return models.Employment{}, err
	}
	return e, nil
}

// UpdateEmployment replaces the entry with the given id.
func (s *Store) UpdateEmployment(ctx context.Context, userID, id primitive.ObjectID, e models.Employment) (models.Employment, error) {
	e.ID = id
	fillEmployment(&e)
	_, err := s.update(ctx, userID,
		bson.M{"employment_details_list._id": id},
		bson.M{"$set": bson.M{"employment_details_list.$": e}})
	if err != nil {
		return models.Employment{}, err
	}
	return e, nil
}

// DeleteEmployment removes the entry with the given id.
func (s *Store) DeleteEmployment(ctx context.Context, userID, id primitive.ObjectID) (*models.JobSeekerProfile, error) {
	return s.update(ctx, userID,
		bson.M{"employment_details_list._id": id},
		bson.M{"$pull": bson.M{"employment_details_list": bson.M{"_id": id}}})
}

func fillEmployment(e *models.Employment) {
	if e.Projects == nil {
		e.Projects = []string{}
	}
	if e.Responsibilities == nil {
		e.Responsibilities = []string{}
	}
	if e.IsOngoing {
		e.EndDate = nil
	}
}

// SaveJob adds jobID to the saved set and returns the updated set.
func (s *Store) SaveJob(ctx context.Context, userID, jobID primitive.ObjectID) ([]primitive.ObjectID, error) {
	p, err := s.update(ctx, userID, nil, bson.M{"$addToSet": bson.M{"saved_jobs": jobID}})
	if err != nil {
		return nil, err
	}
	return p.SavedJobs, nil
}

// UnsaveJob removes jobID from the saved set and returns the updated set.
func (s *Store) UnsaveJob(ctx context.Context, userID, jobID primitive.ObjectID) ([]primitive.ObjectID, error) {
	p, err := s.update(ctx, userID, nil, bson.M{"$pull": bson.M{"saved_jobs": jobID}})
	if err != nil {
		return nil, err
	}
	return p.SavedJobs, nil
}

// SavedJobs returns the saved job ids.
func (s *Store) SavedJobs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	p, err := s.find(ctx, userID, bson.M{"saved_jobs": 1})
	if err != nil {
		return nil, err
	}
	if p.SavedJobs == nil {
		return []primitive.ObjectID{}, nil
	}
	return p.SavedJobs, nil
}

// SetEmailVerified marks the profile's email as verified.
func (s *Store) SetEmailVerified(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.update(ctx, userID, nil, bson.M{"$set": bson.M{"email_verified": true}})
	return err
}

// Summary is the listing shape shown to recruiters.
type Summary struct {
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	FullName     string             `bson:"full_name" json:"fullName"`
	ProfileImage string             `bson:"profile_image" json:"profileImage"`
	Designation  string             `bson:"-" json:"designation"`
	Professional struct {
		Designation string `bson:"designation"`
	} `bson:"professional_details" json:"-"`
}

// All lists every seeker with the fields recruiters browse.
func (s *Store) All(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{
			"user_id":                          1,
			"full_name":                        1,
			"profile_image":                    1,
			"professional_details.designation": 1,
		})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find seekers: %w", err)
	}
	defer cur.Close(ctx)

	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode seekers: %w", err)
	}
	for i := range out {
		out[i].Designation = out[i].Professional.Designation
		if out[i].ProfileImage == "" {
			out[i].ProfileImage = models.DefaultSeekerImage
		}
	}
	return out, nil
}

// Count returns the number of seeker profiles.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
