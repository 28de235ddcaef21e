package usecase

import (
	"strings"
	"testing"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestRenderPage(t *testing.T) {
	t.Parallel()

	t.Run("empty page", func(t *testing.T) {
		assert.Equal(t, emptyWishlistText, renderPage(nil, 0, 1))
	})

	t.Run("page header is one-based", func(t *testing.T) {
		items := []models.WishlistItem{
			{Title: "Keyboard", Price: util.Ptr("99"), URL: "https://shop.example/kb"},
		}
		out := renderPage(items, 1, 3)
		assert.Contains(t, out, "Wishlist Page 2 of 3")
		assert.Contains(t, out, "**Keyboard** – 99")
		assert.Contains(t, out, "<https://shop.example/kb>")
	})

	t.Run("missing price renders as N/A", func(t *testing.T) {
		items := []models.WishlistItem{
			{Title: "Mystery", URL: "https://shop.example/m"},
		}
		assert.Contains(t, renderPage(items, 0, 1), "**Mystery** – N/A")
	})
}

func TestRenderLatest(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, emptyWishlistText, renderLatest(nil))
	})

	t.Run("reverses the newest-first window", func(t *testing.T) {
		newestFirst := []models.WishlistItem{
			{Title: "C", URL: "https://shop.example/c"},
			{Title: "B", URL: "https://shop.example/b"},
			{Title: "A", URL: "https://shop.example/a"},
		}
		out := renderLatest(newestFirst)
		a := strings.Index(out, "**A**")
		c := strings.Index(out, "**C**")
		assert.Less(t, a, c)
	})
}
