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

const announcementCollection = "announcements"

// AnnouncementRepository implements ports.AnnouncementRepository. The
// activation invariant is not enforced here; the storage only offers
// per-document atomic updates and the service sequences the protocol.
type AnnouncementRepository struct {
	coll *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) *AnnouncementRepository {
	return &AnnouncementRepository{coll: db.Collection(announcementCollection)}
}

type announcementDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	TitleEs   string             `bson:"title_es"`
	Content   string             `bson:"content"`
	ContentEs string             `bson:"content_es"`
	Priority  int                `bson:"priority"`
	IsActive  bool               `bson:"is_active"`
	CreatedBy string             `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *announcementDoc) toDomain() *domain.Announcement {
	return &domain.Announcement{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		TitleEs:   d.TitleEs,
		Content:   d.Content,
		ContentEs: d.ContentEs,
		Priority:  d.Priority,
		IsActive:  d.IsActive,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromAnnouncement(a *domain.Announcement) announcementDoc {
	return announcementDoc{
		Title:     a.Title,
		TitleEs:   a.TitleEs,
		Content:   a.Content,
		ContentEs: a.ContentEs,
		Priority:  a.Priority,
		IsActive:  a.IsActive,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *AnnouncementRepository) Insert(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	doc := fromAnnouncement(a)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *AnnouncementRepository) FindByID(ctx context.Context, id string) (*domain.Announcement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAnnouncementNotFound
	}

	var doc announcementDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AnnouncementRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Announcement, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Announcement
	for cur.Next(ctx) {
		var doc announcementDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode announcement: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// FindActive returns the winning active announcement or (nil, nil) when the
// partition has no active document.
func (r *AnnouncementRepository) FindActive(ctx context.Context) (*domain.Announcement, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}})

	var doc announcementDoc
	err := r.coll.FindOne(ctx, bson.M{"is_active": true}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active announcement: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAnnouncementNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":      a.Title,
		"title_es":   a.TitleEs,
		"content":    a.Content,
		"content_es": a.ContentEs,
		"priority":   a.Priority,
		"updated_at": a.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

// DeactivateOthers bulk-clears is_active on every announcement except
// excludeID in one updateMany.
func (r *AnnouncementRepository) DeactivateOthers(ctx context.Context, excludeID string) error {
	oid, err := primitive.ObjectIDFromHex(excludeID)
	if err != nil {
		return domain.ErrAnnouncementNotFound
	}

	_, err = r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": oid}, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("deactivate announcements: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) SetActive(ctx context.Context, id string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAnnouncementNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set announcement active: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAnnouncementNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

// EnsureIndexes creates the index backing the active lookup.
func (r *AnnouncementRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "priority", Value: -1}},
	})
	return err
}
