package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type configRepo struct {
	baseRepo[models.ChannelConfig]
}

func NewConfigStore(db *DB) store.ConfigStore {
	return &configRepo{
		baseRepo: newBaseRepo[models.ChannelConfig](db),
	}
}

func (r *configRepo) IsEnabled(ctx context.Context, scope store.Scope) (bool, error) {
	config, err := r.FindOne(ctx, scopeFilter(scope))
	if errors.Is(err, models.ErrNotFound) {
		// never toggled: capture defaults to on
		return true, nil
	}
	if err != nil {
		log.Warnw(ctx, "channel config read failed, assuming enabled", "error", err, "channel_id", scope.ChannelID)
		return true, nil
	}
	return config.Enabled, nil
}

func (r *configRepo) SetEnabled(ctx context.Context, scope store.Scope, enabled bool) error {
	update := bson.M{
		"$set": bson.M{
			"enabled":    enabled,
			"updated_at": time.Now(),
		},
		"$setOnInsert": bson.M{
			"guild_id":   scope.GuildID,
			"channel_id": scope.ChannelID,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, scopeFilter(scope), update, opts); err != nil {
		return fmt.Errorf("set channel capture flag: %w", err)
	}
	return nil
}
