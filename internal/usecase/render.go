package usecase

import (
	"fmt"
	"strings"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
)

const (
	emptyWishlistText = "**🛒 Your wishlist is empty.**"
	latestHeaderText  = "**🛒 Your Latest Wishlist Items:**"
)

func renderItemLine(item models.WishlistItem) string {
	price := "N/A"
	if item.Price != nil {
		price = *item.Price
	}
	return fmt.Sprintf("• **%s** – %s\n<%s>\n", item.Title, price, item.URL)
}

// renderPage renders one browse page, newest first.
func renderPage(items []models.WishlistItem, pageIndex, totalPages int) string {
	if len(items) == 0 {
		return emptyWishlistText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**🛒 Wishlist Page %d of %d**\n", pageIndex+1, totalPages)
	for _, item := range items {
		b.WriteString(renderItemLine(item))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderLatest renders the newest window oldest-first, the way the channel
// saw the items arrive.
func renderLatest(newestFirst []models.WishlistItem) string {
	if len(newestFirst) == 0 {
		return emptyWishlistText
	}

	var b strings.Builder
	b.WriteString(latestHeaderText)
	b.WriteString("\n")
	for i := len(newestFirst) - 1; i >= 0; i-- {
		b.WriteString(renderItemLine(newestFirst[i]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
