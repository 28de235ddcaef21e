package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
)

// EventUsecase is the single entry point for inbound platform events,
// shared by the Kafka consumer and the webhook endpoints.
type EventUsecase interface {
	HandleMessage(ctx context.Context, msg *models.MessageEvent) error
	HandleInteraction(ctx context.Context, event *models.InteractionEvent) error
}

// CaptureUsecase records product URLs found in channel messages.
type CaptureUsecase interface {
	ProcessMessage(ctx context.Context, msg *models.MessageEvent) error
}

// WishlistUsecase serves the explicit wishlist commands. HandleCommand
// reports whether the message was a command at all.
type WishlistUsecase interface {
	HandleCommand(ctx context.Context, msg *models.MessageEvent) (bool, error)
}

// NavigationUsecase drives pagination sessions from interaction events.
type NavigationUsecase interface {
	HandleInteraction(ctx context.Context, event *models.InteractionEvent) error
}
