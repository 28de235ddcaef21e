package mongodb

import (
	"context"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/pkg/urlnorm"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type itemRepo struct {
	baseRepo[models.WishlistItem]
}

// NewItemStore returns the mongo-backed ItemStore. The unique index on
// (channel_id, url_norm) is what makes concurrent captures of the same URL
// settle on exactly one row.
func NewItemStore(db *DB) store.ItemStore {
	repo := &itemRepo{
		baseRepo: newBaseRepo[models.WishlistItem](db),
	}

	// synchronous: inserts must not race the unique index
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo.createIndexes(ctx)

	return repo
}

func (r *itemRepo) createIndexes(ctx context.Context) {
	uniqueURL := mongo.IndexModel{
		Keys: bson.D{
			{Key: "channel_id", Value: 1},
			{Key: "url_norm", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("channel_urlnorm_unique"),
	}

	channelRecent := mongo.IndexModel{
		Keys: bson.D{
			{Key: "channel_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("channel_recent"),
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{uniqueURL, channelRecent}); err != nil {
		log.Warnw(ctx, "failed to create wishlist indexes", "error", err)
	}
}

func scopeFilter(scope store.Scope) bson.M {
	return bson.M{"channel_id": scope.ChannelID}
}

func (r *itemRepo) Insert(ctx context.Context, scope store.Scope, item *models.WishlistItem) error {
	item.ID = primitive.NewObjectID()
	item.GuildID = scope.GuildID
	item.ChannelID = scope.ChannelID
	item.URLNorm = urlnorm.Normalize(item.URL)
	item.CreatedAt = time.Now()

	err := r.baseRepo.Insert(ctx, *item)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateItem
	}
	if err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

func (r *itemRepo) Count(ctx context.Context, scope store.Scope) (int64, error) {
	count, err := r.baseRepo.Count(ctx, scopeFilter(scope))
	if err != nil {
		log.Warnw(ctx, "wishlist count failed, serving zero", "error", err, "channel_id", scope.ChannelID)
		return 0, nil
	}
	return count, nil
}

func (r *itemRepo) Page(ctx context.Context, scope store.Scope, pageIndex, pageSize int) (*store.Page, error) {
	count, err := r.Count(ctx, scope)
	if err != nil {
		return nil, err
	}

	totalPages := store.TotalPages(count, pageSize)
	pageIndex = store.ClampPage(pageIndex, totalPages)

	opts := options.Find().
		SetSort(newestFirst()).
		SetSkip(int64(pageIndex * pageSize)).
		SetLimit(int64(pageSize))

	items, err := r.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		log.Warnw(ctx, "wishlist page read failed, serving empty", "error", err, "channel_id", scope.ChannelID)
		items = nil
	}

	return &store.Page{
		Items:      items,
		PageIndex:  pageIndex,
		TotalPages: totalPages,
	}, nil
}

func (r *itemRepo) Latest(ctx context.Context, scope store.Scope, limit int) ([]models.WishlistItem, error) {
	opts := options.Find().
		SetSort(newestFirst()).
		SetLimit(int64(limit))

	items, err := r.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		log.Warnw(ctx, "wishlist latest read failed, serving empty", "error", err, "channel_id", scope.ChannelID)
		return nil, nil
	}
	return items, nil
}

func (r *itemRepo) ExportAll(ctx context.Context, scope store.Scope) ([]models.WishlistItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	items, err := r.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		log.Warnw(ctx, "wishlist export read failed, serving empty", "error", err, "channel_id", scope.ChannelID)
		return nil, nil
	}
	return items, nil
}

func (r *itemRepo) Clear(ctx context.Context, scope store.Scope) (int64, error) {
	removed, err := r.DeleteMany(ctx, scopeFilter(scope))
	if err != nil {
		return 0, fmt.Errorf("clear wishlist: %w", err)
	}
	return removed, nil
}

func newestFirst() bson.D {
	// _id breaks ties between items captured within the same millisecond
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}
