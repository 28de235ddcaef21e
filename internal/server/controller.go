package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/usecase"
)

type Controller interface {
	CreateMessageEvent(c echo.Context) error
	CreateInteractionEvent(c echo.Context) error
	GetWishlist(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	events usecase.EventUsecase
	items  store.ItemStore
}

func NewController(events usecase.EventUsecase, items store.ItemStore) Controller {
	return &controller{
		events: events,
		items:  items,
	}
}

// CreateMessageEvent accepts the same message payload the Kafka topic
// carries, for partners without a broker integration.
func (h *controller) CreateMessageEvent(c echo.Context) error {
	var msg models.MessageEvent
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.events.HandleMessage(c.Request().Context(), &msg); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *controller) CreateInteractionEvent(c echo.Context) error {
	var event models.InteractionEvent
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.events.HandleInteraction(c.Request().Context(), &event); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

// GetWishlist returns a channel's items, oldest first. With page_size set
// it serves one newest-first page instead.
func (h *controller) GetWishlist(c echo.Context) error {
	channelID := c.Param("channel_id")
	if channelID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing channel_id")
	}

	scope := store.Scope{
		GuildID:   c.QueryParam("guild_id"),
		ChannelID: channelID,
	}
	ctx := c.Request().Context()

	if pageSize, _ := strconv.Atoi(c.QueryParam("page_size")); pageSize > 0 {
		pageIndex, _ := strconv.Atoi(c.QueryParam("page"))
		page, err := h.items.Page(ctx, scope, pageIndex, pageSize)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]any{
			"channel_id":  channelID,
			"page":        page.PageIndex,
			"total_pages": page.TotalPages,
			"items":       page.Items,
		})
	}

	items, err := h.items.ExportAll(ctx, scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"channel_id": channelID,
		"count":      len(items),
		"items":      items,
	})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "wishlist-bot",
	})
}
