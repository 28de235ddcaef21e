package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/chatapi"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/session"
)

type wishlistUsecase struct {
	conf     *config.Config
	items    store.ItemStore
	configs  store.ConfigStore
	chat     chatapi.Client
	sessions *session.Registry
}

func NewWishlistUsecase(
	conf *config.Config,
	items store.ItemStore,
	configs store.ConfigStore,
	chat chatapi.Client,
	sessions *session.Registry,
) WishlistUsecase {
	return &wishlistUsecase{
		conf:     conf,
		items:    items,
		configs:  configs,
		chat:     chat,
		sessions: sessions,
	}
}

func (uc *wishlistUsecase) HandleCommand(ctx context.Context, msg *models.MessageEvent) (bool, error) {
	command, ok := ParseCommand(msg.Content, uc.conf.Wishlist.CommandToken)
	if !ok {
		return false, nil
	}

	scope := store.Scope{GuildID: msg.GuildID, ChannelID: msg.ChannelID}

	switch command {
	case CommandLatest:
		return true, uc.latest(ctx, scope)
	case CommandBrowse:
		return true, uc.browse(ctx, scope, msg.Author.ID)
	case CommandExport:
		return true, uc.export(ctx, scope)
	case CommandClear:
		return true, uc.adminOnly(ctx, msg, func() error {
			return uc.clear(ctx, scope)
		})
	case CommandEnable:
		return true, uc.adminOnly(ctx, msg, func() error {
			return uc.setEnabled(ctx, scope, true)
		})
	case CommandDisable:
		return true, uc.adminOnly(ctx, msg, func() error {
			return uc.setEnabled(ctx, scope, false)
		})
	}
	return false, nil
}

// adminOnly rejects non-admin authors before any state is touched.
func (uc *wishlistUsecase) adminOnly(ctx context.Context, msg *models.MessageEvent, fn func() error) error {
	if !msg.Author.IsAdmin {
		log.Warnw(ctx, "admin command rejected",
			"channel_id", msg.ChannelID,
			"user_id", msg.Author.ID,
			"error", models.ErrPermissionDenied,
		)
		return uc.reply(ctx, msg.ChannelID, "You need admin permissions for that.")
	}
	return fn()
}

func (uc *wishlistUsecase) latest(ctx context.Context, scope store.Scope) error {
	items, err := uc.items.Latest(ctx, scope, uc.conf.Wishlist.LatestLimit)
	if err != nil {
		return fmt.Errorf("read latest items: %w", err)
	}
	return uc.reply(ctx, scope.ChannelID, renderLatest(items))
}

func (uc *wishlistUsecase) browse(ctx context.Context, scope store.Scope, requesterID string) error {
	page, err := uc.items.Page(ctx, scope, 0, uc.conf.Wishlist.PageSize)
	if err != nil {
		return fmt.Errorf("read first page: %w", err)
	}

	msg := &models.OutgoingMessage{
		ChannelID: scope.ChannelID,
		Content:   renderPage(page.Items, page.PageIndex, page.TotalPages),
	}
	if page.TotalPages > 1 {
		msg.Controls = &models.Controls{NextEnabled: true}
	}

	messageID, err := uc.chat.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send browse page: %w", err)
	}

	// a single page needs no navigation, so no session either
	if page.TotalPages > 1 {
		uc.sessions.Put(session.New(messageID, requesterID, scope, uc.conf.Wishlist.PageSize, page.TotalPages))
	}
	return nil
}

func (uc *wishlistUsecase) export(ctx context.Context, scope store.Scope) error {
	items, err := uc.items.ExportAll(ctx, scope)
	if err != nil {
		return fmt.Errorf("read export items: %w", err)
	}
	if len(items) == 0 {
		return uc.reply(ctx, scope.ChannelID, emptyWishlistText)
	}

	content, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	att := &models.Attachment{
		ChannelID: scope.ChannelID,
		FileName:  ExportFileName(scope),
		MIMEType:  "application/json",
		Content:   content,
	}
	if err := uc.chat.SendAttachment(ctx, att); err != nil {
		return fmt.Errorf("send export: %w", err)
	}
	return nil
}

func (uc *wishlistUsecase) clear(ctx context.Context, scope store.Scope) error {
	removed, err := uc.items.Clear(ctx, scope)
	if err != nil {
		log.Errorw(ctx, "failed to clear wishlist", "channel_id", scope.ChannelID, "error", err)
		return uc.reply(ctx, scope.ChannelID, "Could not clear the wishlist, please try again.")
	}
	return uc.reply(ctx, scope.ChannelID, fmt.Sprintf("Cleared %d item(s) from the wishlist.", removed))
}

func (uc *wishlistUsecase) setEnabled(ctx context.Context, scope store.Scope, enabled bool) error {
	if err := uc.configs.SetEnabled(ctx, scope, enabled); err != nil {
		log.Errorw(ctx, "failed to toggle capture", "channel_id", scope.ChannelID, "error", err)
		return uc.reply(ctx, scope.ChannelID, "Could not update the capture setting, please try again.")
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	return uc.reply(ctx, scope.ChannelID, fmt.Sprintf("Wishlist capture is now %s for this channel.", state))
}

func (uc *wishlistUsecase) reply(ctx context.Context, channelID, content string) error {
	_, err := uc.chat.SendMessage(ctx, &models.OutgoingMessage{
		ChannelID: channelID,
		Content:   content,
	})
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// ExportFileName is deterministic for a channel so repeated exports
// overwrite cleanly on the consumer side.
func ExportFileName(scope store.Scope) string {
	return fmt.Sprintf("wishlist_%s.json", scope.ChannelID)
}
