// Package store defines the wishlist storage contract shared by the
// in-memory and mongo backings.
package store

import (
	"context"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
)

// Scope is the (guild, channel) pair under which items and configuration
// are partitioned. Channel IDs are globally unique, so implementations may
// key on the channel alone.
type Scope struct {
	GuildID   string
	ChannelID string
}

// Page is one slice of a channel's collection, newest first.
type Page struct {
	Items      []models.WishlistItem
	PageIndex  int
	TotalPages int
}

// ItemStore owns the durable per-channel item collections.
//
// Insert computes the normalized URL key and assigns the creation timestamp;
// a second item with the same (channel, normalized URL) fails with
// models.ErrDuplicateItem and writes nothing. The uniqueness check is atomic
// with respect to the backing medium, so concurrent captures of the same URL
// store exactly one row. Read failures degrade to an empty view with a
// logged warning; write failures propagate so callers can report "not saved".
type ItemStore interface {
	Insert(ctx context.Context, scope Scope, item *models.WishlistItem) error
	Count(ctx context.Context, scope Scope) (int64, error)
	Page(ctx context.Context, scope Scope, pageIndex, pageSize int) (*Page, error)
	Latest(ctx context.Context, scope Scope, limit int) ([]models.WishlistItem, error)
	ExportAll(ctx context.Context, scope Scope) ([]models.WishlistItem, error)
	Clear(ctx context.Context, scope Scope) (int64, error)
}

// ConfigStore holds the per-channel capture flag. A channel with no row is
// enabled: the default-on policy is deliberate and must not be inverted.
type ConfigStore interface {
	IsEnabled(ctx context.Context, scope Scope) (bool, error)
	SetEnabled(ctx context.Context, scope Scope, enabled bool) error
}

// TotalPages returns the number of pages for count items. An empty
// collection still has one page, rendered empty.
func TotalPages(count int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	if count <= 0 {
		return 1
	}
	return int((count-1)/int64(pageSize)) + 1
}

// ClampPage clamps a requested page index into [0, totalPages-1].
// Out-of-range requests never fail.
func ClampPage(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}
