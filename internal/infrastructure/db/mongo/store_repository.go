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

const storeCollection = "stores"

type StoreRepository struct {
	col *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{col: db.Collection(storeCollection)}
}

// Insert writes the store keyed by its id. Uniqueness rides on the _id
// primary key: a racing duplicate insert loses with a duplicate-key error and
// the winner's document stays untouched.
func (r *StoreRepository) Insert(ctx context.Context, s *domain.Store) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrStoreExists
		}
		return err
	}
	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Store
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepository) List(ctx context.Context) ([]*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var stores []*domain.Store
	if err := cur.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoreRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}
