package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/chatapi"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/scraper"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/pkg/util"
	"golang.org/x/sync/errgroup"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

const maxConcurrentScrapes = 4

type captureUsecase struct {
	items   store.ItemStore
	configs store.ConfigStore
	scraper scraper.Scraper
	chat    chatapi.Client
}

func NewCaptureUsecase(
	items store.ItemStore,
	configs store.ConfigStore,
	scraper scraper.Scraper,
	chat chatapi.Client,
) CaptureUsecase {
	return &captureUsecase{
		items:   items,
		configs: configs,
		scraper: scraper,
		chat:    chat,
	}
}

func (uc *captureUsecase) ProcessMessage(ctx context.Context, msg *models.MessageEvent) error {
	urls := urlPattern.FindAllString(msg.Content, -1)
	if len(urls) == 0 {
		return nil
	}

	scope := store.Scope{GuildID: msg.GuildID, ChannelID: msg.ChannelID}

	enabled, err := uc.configs.IsEnabled(ctx, scope)
	if err != nil {
		return fmt.Errorf("check capture flag: %w", err)
	}
	if !enabled {
		log.Infow(ctx, "capture disabled for channel, ignoring urls", "channel_id", msg.ChannelID)
		return nil
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentScrapes)
	for _, url := range urls {
		url := url
		group.Go(func() error {
			return uc.captureURL(ctx, scope, msg, url)
		})
	}
	return group.Wait()
}

func (uc *captureUsecase) captureURL(ctx context.Context, scope store.Scope, msg *models.MessageEvent, url string) error {
	info := uc.scraper.Scrape(ctx, url)

	item := &models.WishlistItem{
		URL:       url,
		Title:     info.Title,
		Submitter: util.Ptr(msg.Author.DisplayName),
	}
	if info.Price != scraper.FallbackPrice {
		item.Price = util.Ptr(info.Price)
	}

	err := uc.items.Insert(ctx, scope, item)
	switch {
	case errors.Is(err, models.ErrDuplicateItem):
		log.Infow(ctx, "duplicate wishlist item", "channel_id", msg.ChannelID, "url", url)
		return uc.reply(ctx, msg.ChannelID, fmt.Sprintf("That one is already in the wishlist: <%s>", url))
	case err != nil:
		log.Errorw(ctx, "failed to save wishlist item", "channel_id", msg.ChannelID, "url", url, "error", err)
		return uc.reply(ctx, msg.ChannelID, fmt.Sprintf("Could not save <%s>, please try again.", url))
	}

	confirmation := &models.OutgoingMessage{
		ChannelID: msg.ChannelID,
		Embed: &models.Embed{
			Title:       info.Title,
			Description: fmt.Sprintf("Posted by %s", msg.Author.DisplayName),
			Fields: []models.EmbedField{
				{Name: "Price", Value: info.Price, Inline: true},
				{Name: "Link", Value: fmt.Sprintf("[View Product](%s)", url)},
			},
		},
	}
	if _, err := uc.chat.SendMessage(ctx, confirmation); err != nil {
		return fmt.Errorf("send capture confirmation: %w", err)
	}
	return nil
}

func (uc *captureUsecase) reply(ctx context.Context, channelID, content string) error {
	_, err := uc.chat.SendMessage(ctx, &models.OutgoingMessage{
		ChannelID: channelID,
		Content:   content,
	})
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
