package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gongcha/admin-api/internal/core/domain"
)

const staffCollection = "staff"

type StaffRepository struct {
	col *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{col: db.Collection(staffCollection)}
}

func (r *StaffRepository) Insert(ctx context.Context, s *domain.Staff) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrStaffExists
		}
		return err
	}
	return nil
}

func (r *StaffRepository) FindByUID(ctx context.Context, uid string) (*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Staff
	if err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) List(ctx context.Context) ([]*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var staff []*domain.Staff
	if err := cur.All(ctx, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *StaffRepository) UpdateFields(ctx context.Context, uid string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

// EnsureIndexes creates the email lookup index on the staff collection.
func (r *StaffRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	return err
}
