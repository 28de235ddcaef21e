package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/scraper"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store/memory"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	mu          sync.Mutex
	sent        []*models.OutgoingMessage
	updates     []*models.MessageUpdate
	attachments []*models.Attachment
}

func (f *fakeChat) SendMessage(ctx context.Context, msg *models.OutgoingMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return fmt.Sprintf("m%d", len(f.sent)), nil
}

func (f *fakeChat) UpdateMessage(ctx context.Context, update *models.MessageUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeChat) SendAttachment(ctx context.Context, att *models.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachments = append(f.attachments, att)
	return nil
}

func (f *fakeChat) lastSent() *models.OutgoingMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

type fakeScraper struct {
	results map[string]scraper.Result
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) scraper.Result {
	if r, ok := f.results[url]; ok {
		return r
	}
	return scraper.Result{Title: scraper.FallbackTitle, Price: scraper.FallbackPrice}
}

// failingItemStore simulates an unavailable backing medium for writes.
type failingItemStore struct {
	store.ItemStore
}

func (f *failingItemStore) Insert(ctx context.Context, scope store.Scope, item *models.WishlistItem) error {
	return fmt.Errorf("backing store down")
}

func testConfig() *config.Config {
	return &config.Config{
		Wishlist: config.WishlistConfig{
			PageSize:     5,
			LatestLimit:  5,
			SessionTTL:   time.Minute,
			CommandToken: "!wishlist",
		},
	}
}

type fixture struct {
	conf     *config.Config
	items    store.ItemStore
	configs  store.ConfigStore
	chat     *fakeChat
	scraper  *fakeScraper
	sessions *session.Registry
	router   EventUsecase
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		conf:    testConfig(),
		items:   memory.NewItemStore(),
		configs: memory.NewConfigStore(),
		chat:    &fakeChat{},
		scraper: &fakeScraper{results: map[string]scraper.Result{}},
	}
	f.sessions = session.NewRegistry(f.conf.Wishlist.SessionTTL, nil)
	t.Cleanup(f.sessions.Stop)

	capture := NewCaptureUsecase(f.items, f.configs, f.scraper, f.chat)
	wishlist := NewWishlistUsecase(f.conf, f.items, f.configs, f.chat, f.sessions)
	navigation := NewNavigationUsecase(f.conf, f.items, f.chat, f.sessions)
	f.router = NewEventUsecase(capture, wishlist, navigation)
	return f
}

func message(content string) *models.MessageEvent {
	return &models.MessageEvent{
		MessageID: "in-1",
		GuildID:   "g1",
		ChannelID: "c1",
		Author:    models.Author{ID: "u1", DisplayName: "alice"},
		Content:   content,
	}
}

func adminMessage(content string) *models.MessageEvent {
	msg := message(content)
	msg.Author.IsAdmin = true
	return msg
}

func (f *fixture) seed(t *testing.T, urls ...string) {
	t.Helper()
	scope := store.Scope{GuildID: "g1", ChannelID: "c1"}
	for _, u := range urls {
		item := &models.WishlistItem{URL: u, Title: "Item " + u}
		require.NoError(t, f.items.Insert(context.Background(), scope, item))
		time.Sleep(2 * time.Millisecond)
	}
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	count, err := f.items.Count(context.Background(), store.Scope{GuildID: "g1", ChannelID: "c1"})
	require.NoError(t, err)
	return count
}

func TestCapture(t *testing.T) {
	ctx := context.Background()

	t.Run("url message is scraped and stored", func(t *testing.T) {
		f := newFixture(t)
		f.scraper.results["https://shop.example/kb"] = scraper.Result{Title: "Keyboard", Price: "99"}

		require.NoError(t, f.router.HandleMessage(ctx, message("look at this https://shop.example/kb wow")))
		assert.EqualValues(t, 1, f.count(t))

		sent := f.chat.lastSent()
		require.NotNil(t, sent)
		require.NotNil(t, sent.Embed)
		assert.Equal(t, "Keyboard", sent.Embed.Title)
		assert.Equal(t, "Posted by alice", sent.Embed.Description)
	})

	t.Run("message without urls is a no-op", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.router.HandleMessage(ctx, message("no links here")))
		assert.EqualValues(t, 0, f.count(t))
		assert.Nil(t, f.chat.lastSent())
	})

	t.Run("duplicate url is rejected with a reply", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "https://shop.example/x")

		require.NoError(t, f.router.HandleMessage(ctx, message("https://shop.example/x/")))
		assert.EqualValues(t, 1, f.count(t))
		assert.Contains(t, f.chat.lastSent().Content, "already in the wishlist")
	})

	t.Run("disabled channel captures nothing", func(t *testing.T) {
		f := newFixture(t)
		scope := store.Scope{GuildID: "g1", ChannelID: "c1"}
		require.NoError(t, f.configs.SetEnabled(ctx, scope, false))

		require.NoError(t, f.router.HandleMessage(ctx, message("https://shop.example/x")))
		assert.EqualValues(t, 0, f.count(t))
		assert.Nil(t, f.chat.lastSent())
	})

	t.Run("store write failure reports not saved", func(t *testing.T) {
		f := newFixture(t)
		capture := NewCaptureUsecase(&failingItemStore{}, f.configs, f.scraper, f.chat)

		require.NoError(t, capture.ProcessMessage(ctx, message("https://shop.example/x")))
		assert.Contains(t, f.chat.lastSent().Content, "Could not save")
	})

	t.Run("unknown price is stored as absent", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.router.HandleMessage(ctx, message("https://shop.example/mystery")))

		items, err := f.items.ExportAll(ctx, store.Scope{GuildID: "g1", ChannelID: "c1"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].Price)
		assert.Equal(t, scraper.FallbackTitle, items[0].Title)
	})

	t.Run("bot messages are ignored", func(t *testing.T) {
		f := newFixture(t)
		msg := message("https://shop.example/x")
		msg.Author.IsBot = true

		require.NoError(t, f.router.HandleMessage(ctx, msg))
		assert.EqualValues(t, 0, f.count(t))
	})
}

func TestWishlistCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("latest renders newest window oldest first", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t,
			"https://shop.example/1",
			"https://shop.example/2",
			"https://shop.example/3",
		)

		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist")))
		content := f.chat.lastSent().Content
		assert.Contains(t, content, "Latest Wishlist Items")

		first := strings.Index(content, "https://shop.example/1")
		last := strings.Index(content, "https://shop.example/3")
		require.GreaterOrEqual(t, first, 0)
		require.GreaterOrEqual(t, last, 0)
		assert.Less(t, first, last, "oldest of the window comes first")
	})

	t.Run("empty wishlist renders the empty message", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist")))
		assert.Equal(t, emptyWishlistText, f.chat.lastSent().Content)
	})

	t.Run("browse with one page creates no session", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "https://shop.example/1")

		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist all")))
		assert.Nil(t, f.chat.lastSent().Controls)
		assert.Equal(t, 0, f.sessions.Len())
	})

	t.Run("browse with two pages attaches controls and a session", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t,
			"https://shop.example/1",
			"https://shop.example/2",
			"https://shop.example/3",
			"https://shop.example/4",
			"https://shop.example/5",
			"https://shop.example/6",
		)

		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist all")))
		sent := f.chat.lastSent()
		assert.Contains(t, sent.Content, "Page 1 of 2")
		require.NotNil(t, sent.Controls)
		assert.False(t, sent.Controls.PrevEnabled)
		assert.True(t, sent.Controls.NextEnabled)
		assert.Equal(t, 1, f.sessions.Len())
	})

	t.Run("export sends a deterministic json attachment", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "https://shop.example/1")

		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist export")))
		require.Len(t, f.chat.attachments, 1)
		att := f.chat.attachments[0]
		assert.Equal(t, "wishlist_c1.json", att.FileName)
		assert.Equal(t, "application/json", att.MIMEType)
		assert.Contains(t, string(att.Content), "https://shop.example/1")
	})

	t.Run("export of an empty wishlist replies instead", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist export")))
		assert.Empty(t, f.chat.attachments)
		assert.Equal(t, emptyWishlistText, f.chat.lastSent().Content)
	})

	t.Run("clear requires admin and mutates nothing otherwise", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "https://shop.example/1")

		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist clear")))
		assert.EqualValues(t, 1, f.count(t))
		assert.Contains(t, f.chat.lastSent().Content, "admin")
	})

	t.Run("admin clear reports the removed count", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "https://shop.example/1", "https://shop.example/2")

		require.NoError(t, f.router.HandleMessage(ctx, adminMessage("!wishlist clear")))
		assert.EqualValues(t, 0, f.count(t))
		assert.Contains(t, f.chat.lastSent().Content, "Cleared 2 item(s)")
	})

	t.Run("toggle is admin gated and round trips", func(t *testing.T) {
		f := newFixture(t)
		scope := store.Scope{GuildID: "g1", ChannelID: "c1"}

		require.NoError(t, f.router.HandleMessage(ctx, message("!wishlist off")))
		enabled, err := f.configs.IsEnabled(ctx, scope)
		require.NoError(t, err)
		assert.True(t, enabled, "non-admin toggle must not change state")

		require.NoError(t, f.router.HandleMessage(ctx, adminMessage("!wishlist off")))
		enabled, err = f.configs.IsEnabled(ctx, scope)
		require.NoError(t, err)
		assert.False(t, enabled)

		require.NoError(t, f.router.HandleMessage(ctx, adminMessage("!wishlist on")))
		enabled, err = f.configs.IsEnabled(ctx, scope)
		require.NoError(t, err)
		assert.True(t, enabled)
	})
}
