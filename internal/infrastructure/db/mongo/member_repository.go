package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

const memberCollection = "members"

type MemberRepository struct {
	col *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{col: db.Collection(memberCollection)}
}

func (r *MemberRepository) FindByUID(ctx context.Context, uid string) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Member
	if err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) List(ctx context.Context, filter ports.ListMembersFilter) ([]*domain.Member, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Tier != "" {
		query["tier"] = filter.Tier
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"phone_number": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var members []*domain.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// UpdateFields applies a $set patch and stamps updated_at. Fields are
// expected to be allow-listed by the service layer.
func (r *MemberRepository) UpdateFields(ctx context.Context, uid string, fields map[string]any) error {
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
		return domain.ErrMemberNotFound
	}
	return nil
}

// UpdatePoints sets both balances plus the editor stamp in a single write.
func (r *MemberRepository) UpdatePoints(ctx context.Context, uid string, current, lifetime int64, editorUID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"current_points":    current,
		"lifetime_points":   lifetime,
		"points_updated_by": editorUID,
		"points_updated_at": at,
		"updated_at":        at,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// AppendVoucher adds the voucher via $addToSet so concurrent grants to the
// same member never overwrite each other.
func (r *MemberRepository) AppendVoucher(ctx context.Context, uid string, v domain.Voucher) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"vouchers": v},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// EnsureIndexes creates lookup indexes on the members collection.
func (r *MemberRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone_number", Value: 1}}},
		{Keys: bson.D{{Key: "tier", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
