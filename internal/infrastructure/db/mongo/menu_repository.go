package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gongcha/admin-api/internal/core/domain"
)

const menuCollection = "menu_items"

type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(menuCollection)}
}

// Menu items are schemaless: the document is the attribute bag plus the
// reserved identity and timestamp keys.
func (r *MenuRepository) Insert(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"_id":        item.ID,
		"created_at": item.CreatedAt,
		"updated_at": item.UpdatedAt,
	}
	for k, v := range item.Attributes {
		doc[k] = v
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return docToMenuItem(doc), nil
}

func (r *MenuRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]*domain.MenuItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, docToMenuItem(doc))
	}
	return items, nil
}

func (r *MenuRepository) UpdateAttributes(ctx context.Context, id string, attrs map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range attrs {
		set[k] = v
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func docToMenuItem(doc bson.M) *domain.MenuItem {
	item := &domain.MenuItem{Attributes: make(map[string]any, len(doc))}
	for k, v := range doc {
		switch k {
		case "_id":
			item.ID, _ = v.(string)
		case "created_at":
			item.CreatedAt = asTime(v)
		case "updated_at":
			item.UpdatedAt = asTime(v)
		default:
			item.Attributes[k] = v
		}
	}
	return item
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	}
	return time.Time{}
}
