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

const subscriberCollection = "subscribers"

// SubscriberRepository implements ports.SubscriberRepository over MongoDB.
type SubscriberRepository struct {
	coll *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) *SubscriberRepository {
	return &SubscriberRepository{coll: db.Collection(subscriberCollection)}
}

type subscriberDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Email            string             `bson:"email"`
	Language         string             `bson:"language"`
	UnsubscribeToken string             `bson:"unsubscribe_token"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (d *subscriberDoc) toDomain() *domain.Subscriber {
	return &domain.Subscriber{
		ID:               d.ID.Hex(),
		Email:            d.Email,
		Language:         d.Language,
		UnsubscribeToken: d.UnsubscribeToken,
		CreatedAt:        d.CreatedAt,
	}
}

func (r *SubscriberRepository) Insert(ctx context.Context, s *domain.Subscriber) (*domain.Subscriber, error) {
	doc := subscriberDoc{
		Email:            s.Email,
		Language:         s.Language,
		UnsubscribeToken: s.UnsubscribeToken,
		CreatedAt:        s.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSubscriberExists
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SubscriberRepository) FindByToken(ctx context.Context, token string) (*domain.Subscriber, error) {
	var doc subscriberDoc
	if err := r.coll.FindOne(ctx, bson.M{"unsubscribe_token": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SubscriberRepository) List(ctx context.Context) ([]*domain.Subscriber, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Subscriber
	for cur.Next(ctx) {
		var doc subscriberDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode subscriber: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *SubscriberRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubscriberNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubscriberNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email and token lookup indexes.
func (r *SubscriberRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "unsubscribe_token", Value: 1}},
		},
	})
	return err
}
