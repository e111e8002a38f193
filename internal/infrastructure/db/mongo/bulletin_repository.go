package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

const bulletinCollection = "bulletins"

// BulletinRepository implements ports.BulletinRepository. Activation is
// partitioned by week_key; DeactivateOthersInWeek only touches siblings in
// the same partition.
type BulletinRepository struct {
	coll *mongo.Collection
}

func NewBulletinRepository(db *mongo.Database) *BulletinRepository {
	return &BulletinRepository{coll: db.Collection(bulletinCollection)}
}

type bulletinDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	TitleEs   string             `bson:"title_es"`
	Date      time.Time          `bson:"date"`
	WeekKey   string             `bson:"week_key"`
	FileKey   string             `bson:"file_key"`
	FileName  string             `bson:"file_name"`
	IsActive  bool               `bson:"is_active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *bulletinDoc) toDomain() *domain.Bulletin {
	return &domain.Bulletin{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		TitleEs:   d.TitleEs,
		Date:      d.Date,
		WeekKey:   d.WeekKey,
		FileKey:   d.FileKey,
		FileName:  d.FileName,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *BulletinRepository) Insert(ctx context.Context, b *domain.Bulletin) (*domain.Bulletin, error) {
	doc := bulletinDoc{
		Title:     b.Title,
		TitleEs:   b.TitleEs,
		Date:      b.Date,
		WeekKey:   b.WeekKey,
		FileKey:   b.FileKey,
		FileName:  b.FileName,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert bulletin: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BulletinRepository) FindByID(ctx context.Context, id string) (*domain.Bulletin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBulletinNotFound
	}

	var doc bulletinDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBulletinNotFound
		}
		return nil, fmt.Errorf("find bulletin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BulletinRepository) List(ctx context.Context, limit int) ([]*domain.Bulletin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bulletins: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Bulletin
	for cur.Next(ctx) {
		var doc bulletinDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode bulletin: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// FindCurrentActive returns the most recent active bulletin or (nil, nil)
// when none is active.
func (r *BulletinRepository) FindCurrentActive(ctx context.Context) (*domain.Bulletin, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var doc bulletinDoc
	err := r.coll.FindOne(ctx, bson.M{"is_active": true}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find current bulletin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BulletinRepository) DeactivateOthersInWeek(ctx context.Context, weekKey, excludeID string) error {
	oid, err := primitive.ObjectIDFromHex(excludeID)
	if err != nil {
		return domain.ErrBulletinNotFound
	}

	_, err = r.coll.UpdateMany(ctx,
		bson.M{"week_key": weekKey, "_id": bson.M{"$ne": oid}, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("deactivate bulletins in week %s: %w", weekKey, err)
	}
	return nil
}

func (r *BulletinRepository) SetActive(ctx context.Context, id string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBulletinNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set bulletin active: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBulletinNotFound
	}
	return nil
}

func (r *BulletinRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBulletinNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bulletin: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBulletinNotFound
	}
	return nil
}

// EnsureIndexes creates the week partition index.
func (r *BulletinRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "week_key", Value: 1}, {Key: "is_active", Value: 1}},
	})
	return err
}
