package usecase

import (
	"context"
	"testing"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browseSession(t *testing.T, f *fixture) string {
	t.Helper()
	f.seed(t,
		"https://shop.example/1",
		"https://shop.example/2",
		"https://shop.example/3",
		"https://shop.example/4",
		"https://shop.example/5",
		"https://shop.example/6",
	)
	require.NoError(t, f.router.HandleMessage(context.Background(), message("!wishlist all")))
	require.Equal(t, 1, f.sessions.Len())
	return "m1" // first message the fake chat handed out
}

func interaction(messageID, userID, action string) *models.InteractionEvent {
	return &models.InteractionEvent{
		InteractionID: "i1",
		GuildID:       "g1",
		ChannelID:     "c1",
		MessageID:     messageID,
		Author:        models.Author{ID: userID},
		Action:        action,
	}
}

func TestNavigation(t *testing.T) {
	ctx := context.Background()

	t.Run("next renders the following page", func(t *testing.T) {
		f := newFixture(t)
		msgID := browseSession(t, f)

		require.NoError(t, f.router.HandleInteraction(ctx, interaction(msgID, "u1", models.ActionNext)))
		require.Len(t, f.chat.updates, 1)

		update := f.chat.updates[0]
		assert.Equal(t, msgID, update.MessageID)
		assert.Contains(t, update.Content, "Page 2 of 2")
		assert.Contains(t, update.Content, "https://shop.example/1")
		require.NotNil(t, update.Controls)
		assert.True(t, update.Controls.PrevEnabled)
		assert.False(t, update.Controls.NextEnabled)
	})

	t.Run("next at the last page is inert", func(t *testing.T) {
		f := newFixture(t)
		msgID := browseSession(t, f)

		require.NoError(t, f.router.HandleInteraction(ctx, interaction(msgID, "u1", models.ActionNext)))
		require.NoError(t, f.router.HandleInteraction(ctx, interaction(msgID, "u1", models.ActionNext)))
		assert.Len(t, f.chat.updates, 1, "second press changes nothing")
	})

	t.Run("prev at page zero is inert", func(t *testing.T) {
		f := newFixture(t)
		msgID := browseSession(t, f)

		require.NoError(t, f.router.HandleInteraction(ctx, interaction(msgID, "u1", models.ActionPrev)))
		assert.Empty(t, f.chat.updates)
	})

	t.Run("only the requester can navigate", func(t *testing.T) {
		f := newFixture(t)
		msgID := browseSession(t, f)

		require.NoError(t, f.router.HandleInteraction(ctx, interaction(msgID, "someone-else", models.ActionNext)))
		assert.Empty(t, f.chat.updates)

		sess, ok := f.sessions.Get(msgID)
		require.True(t, ok)
		page, _ := sess.View()
		assert.Equal(t, 0, page, "session state unchanged")
	})

	t.Run("unknown message id is ignored", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.router.HandleInteraction(ctx, interaction("nope", "u1", models.ActionNext)))
		assert.Empty(t, f.chat.updates)
	})

	t.Run("collection cleared mid-session clamps to the empty page", func(t *testing.T) {
		f := newFixture(t)
		msgID := browseSession(t, f)

		require.NoError(t, f.router.HandleMessage(ctx, adminMessage("!wishlist clear")))

		require.NoError(t, f.router.HandleInteraction(ctx, interaction(msgID, "u1", models.ActionNext)))
		require.Len(t, f.chat.updates, 1)
		assert.Contains(t, f.chat.updates[0].Content, "empty")
	})

	t.Run("expired session ignores navigation", func(t *testing.T) {
		f := newFixture(t)
		msgID := browseSession(t, f)

		sess, ok := f.sessions.Get(msgID)
		require.True(t, ok)
		sess.Expire()

		require.NoError(t, f.router.HandleInteraction(ctx, interaction(msgID, "u1", models.ActionNext)))
		assert.Empty(t, f.chat.updates)
	})
}
