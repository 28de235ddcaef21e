// Package memory is the mutex-guarded in-process store backing. It satisfies
// the same contract as the mongo backing and is used by tests and local runs
// without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/pkg/urlnorm"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type itemStore struct {
	mu    sync.Mutex
	items map[string][]models.WishlistItem // channel id -> insertion order
	norms map[string]map[string]struct{}   // channel id -> normalized url set
}

func NewItemStore() store.ItemStore {
	return &itemStore{
		items: make(map[string][]models.WishlistItem),
		norms: make(map[string]map[string]struct{}),
	}
}

func (s *itemStore) Insert(ctx context.Context, scope store.Scope, item *models.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	norm := urlnorm.Normalize(item.URL)
	set, ok := s.norms[scope.ChannelID]
	if !ok {
		set = make(map[string]struct{})
		s.norms[scope.ChannelID] = set
	}
	if _, exists := set[norm]; exists {
		return models.ErrDuplicateItem
	}

	stored := *item
	stored.ID = primitive.NewObjectID()
	stored.GuildID = scope.GuildID
	stored.ChannelID = scope.ChannelID
	stored.URLNorm = norm
	stored.CreatedAt = time.Now()

	set[norm] = struct{}{}
	s.items[scope.ChannelID] = append(s.items[scope.ChannelID], stored)
	*item = stored
	return nil
}

func (s *itemStore) Count(ctx context.Context, scope store.Scope) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.items[scope.ChannelID])), nil
}

func (s *itemStore) Page(ctx context.Context, scope store.Scope, pageIndex, pageSize int) (*store.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.items[scope.ChannelID]
	totalPages := store.TotalPages(int64(len(all)), pageSize)
	pageIndex = store.ClampPage(pageIndex, totalPages)

	newest := reversed(all)
	start := pageIndex * pageSize
	if start > len(newest) {
		start = len(newest)
	}
	end := start + pageSize
	if end > len(newest) {
		end = len(newest)
	}

	return &store.Page{
		Items:      newest[start:end],
		PageIndex:  pageIndex,
		TotalPages: totalPages,
	}, nil
}

func (s *itemStore) Latest(ctx context.Context, scope store.Scope, limit int) ([]models.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newest := reversed(s.items[scope.ChannelID])
	if limit >= 0 && limit < len(newest) {
		newest = newest[:limit]
	}
	return newest, nil
}

func (s *itemStore) ExportAll(ctx context.Context, scope store.Scope) ([]models.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.items[scope.ChannelID]
	out := make([]models.WishlistItem, len(all))
	copy(out, all)
	return out, nil
}

func (s *itemStore) Clear(ctx context.Context, scope store.Scope) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := int64(len(s.items[scope.ChannelID]))
	delete(s.items, scope.ChannelID)
	delete(s.norms, scope.ChannelID)
	return removed, nil
}

func reversed(items []models.WishlistItem) []models.WishlistItem {
	out := make([]models.WishlistItem, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

type configStore struct {
	mu      sync.Mutex
	enabled map[string]bool // channel id -> explicit flag
}

func NewConfigStore() store.ConfigStore {
	return &configStore{
		enabled: make(map[string]bool),
	}
}

func (s *configStore) IsEnabled(ctx context.Context, scope store.Scope) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enabled, ok := s.enabled[scope.ChannelID]
	if !ok {
		// default-on: a channel never toggled captures everything
		return true, nil
	}
	return enabled, nil
}

func (s *configStore) SetEnabled(ctx context.Context, scope store.Scope, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled[scope.ChannelID] = enabled
	return nil
}
