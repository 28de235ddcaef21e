package usecase

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/chatapi"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/session"
)

type navigationUsecase struct {
	conf     *config.Config
	items    store.ItemStore
	chat     chatapi.Client
	sessions *session.Registry
}

func NewNavigationUsecase(
	conf *config.Config,
	items store.ItemStore,
	chat chatapi.Client,
	sessions *session.Registry,
) NavigationUsecase {
	return &navigationUsecase{
		conf:     conf,
		items:    items,
		chat:     chat,
		sessions: sessions,
	}
}

func (uc *navigationUsecase) HandleInteraction(ctx context.Context, event *models.InteractionEvent) error {
	sess, ok := uc.sessions.Get(event.MessageID)
	if !ok {
		// unknown or expired session: silently inert
		return nil
	}

	if event.Author.ID != sess.RequesterID {
		log.Infow(ctx, "navigation from non-requester ignored",
			"message_id", event.MessageID,
			"user_id", event.Author.ID,
		)
		return nil
	}

	pageSize := sess.PageSize
	_, _, changed := sess.Advance(event.Action, func() int {
		count, err := uc.items.Count(ctx, sess.Scope)
		if err != nil {
			count = 0
		}
		return store.TotalPages(count, pageSize)
	})
	if !changed {
		return nil
	}

	page, _ := sess.View()
	result, err := uc.items.Page(ctx, sess.Scope, page, pageSize)
	if err != nil {
		return fmt.Errorf("read page %d: %w", page, err)
	}

	controls := sess.Controls()
	update := &models.MessageUpdate{
		ChannelID: sess.Scope.ChannelID,
		MessageID: sess.MessageID,
		Content:   renderPage(result.Items, result.PageIndex, result.TotalPages),
		Controls:  &controls,
	}
	if err := uc.chat.UpdateMessage(ctx, update); err != nil {
		return fmt.Errorf("update paginated message: %w", err)
	}
	return nil
}

// NewSessionRegistry wires the inactivity expiry to the chat platform:
// once a session times out its message keeps the content but loses the
// navigation controls.
func NewSessionRegistry(conf *config.Config, chat chatapi.Client) *session.Registry {
	return session.NewRegistry(conf.Wishlist.SessionTTL, func(s *session.Session) {
		ctx := context.Background()
		update := &models.MessageUpdate{
			ChannelID: s.Scope.ChannelID,
			MessageID: s.MessageID,
			Controls:  &models.Controls{},
		}
		if err := chat.UpdateMessage(ctx, update); err != nil {
			log.Warnw(ctx, "failed to disable controls on expired session",
				"message_id", s.MessageID,
				"error", err,
			)
		}
	})
}
