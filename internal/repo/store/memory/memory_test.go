package memory

import (
	"testing"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store/storetest"
)

func TestItemStoreConformance(t *testing.T) {
	storetest.RunItemStore(t, func(t *testing.T) store.ItemStore {
		return NewItemStore()
	})
}

func TestConfigStoreConformance(t *testing.T) {
	storetest.RunConfigStore(t, func(t *testing.T) store.ConfigStore {
		return NewConfigStore()
	})
}
