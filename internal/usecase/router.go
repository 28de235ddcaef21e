package usecase

import (
	"context"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
)

type eventRouter struct {
	capture    CaptureUsecase
	wishlist   WishlistUsecase
	navigation NavigationUsecase
}

func NewEventUsecase(
	capture CaptureUsecase,
	wishlist WishlistUsecase,
	navigation NavigationUsecase,
) EventUsecase {
	return &eventRouter{
		capture:    capture,
		wishlist:   wishlist,
		navigation: navigation,
	}
}

func (r *eventRouter) HandleMessage(ctx context.Context, msg *models.MessageEvent) error {
	if msg.Author.IsBot {
		log.Debugw(ctx, "ignoring bot message", "channel_id", msg.ChannelID, "sender_id", msg.Author.ID)
		return nil
	}

	handled, err := r.wishlist.HandleCommand(ctx, msg)
	if err != nil || handled {
		return err
	}

	return r.capture.ProcessMessage(ctx, msg)
}

func (r *eventRouter) HandleInteraction(ctx context.Context, event *models.InteractionEvent) error {
	if event.Author.IsBot {
		return nil
	}
	return r.navigation.HandleInteraction(ctx, event)
}
