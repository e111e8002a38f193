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

const eventCollection = "events"

// EventRepository implements ports.EventRepository over MongoDB.
type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventCollection)}
}

type eventDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	TitleEs       string             `bson:"title_es"`
	Description   string             `bson:"description"`
	DescriptionEs string             `bson:"description_es"`
	Location      string             `bson:"location"`
	StartsAt      time.Time          `bson:"starts_at"`
	EndsAt        time.Time          `bson:"ends_at"`
	ExternalUID   string             `bson:"external_uid,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		TitleEs:       d.TitleEs,
		Description:   d.Description,
		DescriptionEs: d.DescriptionEs,
		Location:      d.Location,
		StartsAt:      d.StartsAt,
		EndsAt:        d.EndsAt,
		ExternalUID:   d.ExternalUID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *EventRepository) Insert(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	doc := eventDoc{
		Title:         e.Title,
		TitleEs:       e.TitleEs,
		Description:   e.Description,
		DescriptionEs: e.DescriptionEs,
		Location:      e.Location,
		StartsAt:      e.StartsAt,
		EndsAt:        e.EndsAt,
		ExternalUID:   e.ExternalUID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var doc eventDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	// Events without an end time count as upcoming until they start.
	filter := bson.M{"$or": bson.A{
		bson.M{"ends_at": bson.M{"$gte": from}},
		bson.M{"ends_at": time.Time{}, "starts_at": bson.M{"$gte": from}},
	}}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Event
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":          e.Title,
		"title_es":       e.TitleEs,
		"description":    e.Description,
		"description_es": e.DescriptionEs,
		"location":       e.Location,
		"starts_at":      e.StartsAt,
		"ends_at":        e.EndsAt,
		"updated_at":     e.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// UpsertByExternalUID inserts or replaces the event carrying the feed uid in
// one round trip. Created reports whether a new document appeared.
func (r *EventRepository) UpsertByExternalUID(ctx context.Context, e *domain.Event) (bool, error) {
	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"external_uid": e.ExternalUID},
		bson.M{
			"$set": bson.M{
				"title":          e.Title,
				"title_es":       e.TitleEs,
				"description":    e.Description,
				"description_es": e.DescriptionEs,
				"location":       e.Location,
				"starts_at":      e.StartsAt,
				"ends_at":        e.EndsAt,
				"updated_at":     now,
			},
			"$setOnInsert": bson.M{
				"external_uid": e.ExternalUID,
				"created_at":   now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("upsert event %s: %w", e.ExternalUID, err)
	}
	return res.UpsertedCount > 0, nil
}

// EnsureIndexes creates the upsert and listing indexes. The external uid
// index is sparse so manually created events without a uid don't collide.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "external_uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "starts_at", Value: 1}},
		},
	})
	return err
}
