// Package storetest holds the conformance suite every ItemStore and
// ConfigStore backing must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(url string) *models.WishlistItem {
	return &models.WishlistItem{
		URL:   url,
		Title: "Unknown",
	}
}

func insertN(t *testing.T, s store.ItemStore, scope store.Scope, urls ...string) {
	t.Helper()
	ctx := context.Background()
	for _, u := range urls {
		require.NoError(t, s.Insert(ctx, scope, newItem(u)))
		// keep created_at strictly increasing across backings
		time.Sleep(2 * time.Millisecond)
	}
}

// RunItemStore exercises the ItemStore contract against a fresh store built
// by newStore for each subtest.
func RunItemStore(t *testing.T, newStore func(t *testing.T) store.ItemStore) {
	ctx := context.Background()
	scope := store.Scope{GuildID: "g1", ChannelID: "c1"}

	t.Run("duplicate normalized url is rejected", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Insert(ctx, scope, newItem("https://shop.example/x")))

		err := s.Insert(ctx, scope, newItem("https://shop.example/x/"))
		require.ErrorIs(t, err, models.ErrDuplicateItem)

		count, err := s.Count(ctx, scope)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("same url in another channel is not a duplicate", func(t *testing.T) {
		s := newStore(t)
		other := store.Scope{GuildID: "g1", ChannelID: "c2"}
		require.NoError(t, s.Insert(ctx, scope, newItem("https://shop.example/x")))
		require.NoError(t, s.Insert(ctx, other, newItem("https://shop.example/x")))
	})

	t.Run("concurrent inserts keep exactly one row", func(t *testing.T) {
		s := newStore(t)

		const writers = 8
		var wg sync.WaitGroup
		errs := make([]error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.Insert(ctx, scope, newItem("https://shop.example/race"))
			}(i)
		}
		wg.Wait()

		okCount := 0
		for _, err := range errs {
			if err == nil {
				okCount++
			} else {
				assert.ErrorIs(t, err, models.ErrDuplicateItem)
			}
		}
		assert.Equal(t, 1, okCount)

		count, err := s.Count(ctx, scope)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("empty collection renders one empty page", func(t *testing.T) {
		s := newStore(t)
		page, err := s.Page(ctx, scope, 0, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 0, page.PageIndex)
		assert.Empty(t, page.Items)
	})

	t.Run("pages are newest first and clamp out of range", func(t *testing.T) {
		s := newStore(t)
		insertN(t, s, scope,
			"https://shop.example/a",
			"https://shop.example/b",
			"https://shop.example/c",
			"https://shop.example/d",
			"https://shop.example/e",
			"https://shop.example/f",
		)

		page0, err := s.Page(ctx, scope, 0, 5)
		require.NoError(t, err)
		assert.Equal(t, 2, page0.TotalPages)
		require.Len(t, page0.Items, 5)
		assert.Equal(t, "https://shop.example/f", page0.Items[0].URL)
		assert.Equal(t, "https://shop.example/b", page0.Items[4].URL)

		page1, err := s.Page(ctx, scope, 1, 5)
		require.NoError(t, err)
		require.Len(t, page1.Items, 1)
		assert.Equal(t, "https://shop.example/a", page1.Items[0].URL)

		for _, idx := range []int{-1, 2, 99} {
			clamped, err := s.Page(ctx, scope, idx, 5)
			require.NoError(t, err)
			want := page0
			if idx >= 1 {
				want = page1
			}
			assert.Equal(t, want.PageIndex, clamped.PageIndex, "requested %d", idx)
			assert.Equal(t, len(want.Items), len(clamped.Items), "requested %d", idx)
		}
	})

	t.Run("latest returns newest first within limit", func(t *testing.T) {
		s := newStore(t)
		insertN(t, s, scope,
			"https://shop.example/1",
			"https://shop.example/2",
			"https://shop.example/3",
		)

		items, err := s.Latest(ctx, scope, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "https://shop.example/3", items[0].URL)
		assert.Equal(t, "https://shop.example/2", items[1].URL)
	})

	t.Run("export is ascending by creation time", func(t *testing.T) {
		s := newStore(t)
		insertN(t, s, scope,
			"https://shop.example/1",
			"https://shop.example/2",
			"https://shop.example/3",
		)

		items, err := s.ExportAll(ctx, scope)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "https://shop.example/1", items[0].URL)
		assert.Equal(t, "https://shop.example/3", items[2].URL)
		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].CreatedAt.Before(items[i-1].CreatedAt))
		}
	})

	t.Run("clear removes only the scoped rows", func(t *testing.T) {
		s := newStore(t)
		other := store.Scope{GuildID: "g1", ChannelID: "c2"}
		insertN(t, s, scope, "https://shop.example/1", "https://shop.example/2")
		insertN(t, s, other, "https://shop.example/3")

		removed, err := s.Clear(ctx, scope)
		require.NoError(t, err)
		assert.EqualValues(t, 2, removed)

		count, err := s.Count(ctx, scope)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)

		otherCount, err := s.Count(ctx, other)
		require.NoError(t, err)
		assert.EqualValues(t, 1, otherCount)
	})

	t.Run("insert assigns created_at and normalized url", func(t *testing.T) {
		s := newStore(t)
		item := newItem(" HTTPS://Shop.Example/Item/ ")
		require.NoError(t, s.Insert(ctx, scope, item))

		items, err := s.ExportAll(ctx, scope)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "https://shop.example/item", items[0].URLNorm)
		assert.False(t, items[0].CreatedAt.IsZero())
	})
}

// RunConfigStore exercises the ConfigStore contract.
func RunConfigStore(t *testing.T, newStore func(t *testing.T) store.ConfigStore) {
	ctx := context.Background()

	t.Run("absent row means enabled", func(t *testing.T) {
		s := newStore(t)
		enabled, err := s.IsEnabled(ctx, store.Scope{GuildID: "g1", ChannelID: "fresh"})
		require.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("toggle round trip", func(t *testing.T) {
		s := newStore(t)
		scope := store.Scope{GuildID: "g1", ChannelID: "c1"}

		require.NoError(t, s.SetEnabled(ctx, scope, false))
		enabled, err := s.IsEnabled(ctx, scope)
		require.NoError(t, err)
		assert.False(t, enabled)

		require.NoError(t, s.SetEnabled(ctx, scope, true))
		enabled, err = s.IsEnabled(ctx, scope)
		require.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("scopes are independent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SetEnabled(ctx, store.Scope{GuildID: "g1", ChannelID: "c1"}, false))

		enabled, err := s.IsEnabled(ctx, store.Scope{GuildID: "g1", ChannelID: "c2"})
		require.NoError(t, err)
		assert.True(t, enabled)
	})
}
