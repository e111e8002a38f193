package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the repositories rely on.
// Called once at startup; CreateIndexes is idempotent on the server side.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}

	for name, repo := range map[string]indexed{
		staffCollection:        NewStaffRepository(db),
		memberCollection:       NewMemberRepository(db),
		announcementCollection: NewAnnouncementRepository(db),
		bulletinCollection:     NewBulletinRepository(db),
		eventCollection:        NewEventRepository(db),
		subscriberCollection:   NewSubscriberRepository(db),
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", name, err)
		}
	}
	return nil
}
