// Package chatapi is the outbound boundary to the chat platform.
package chatapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/pkg/util"
)

const callTimeout = 30 * time.Second

type Client interface {
	// SendMessage posts a new message and returns the platform message ID.
	SendMessage(ctx context.Context, msg *models.OutgoingMessage) (string, error)
	// UpdateMessage edits a previously sent message in place.
	UpdateMessage(ctx context.Context, update *models.MessageUpdate) error
	// SendAttachment posts a file to a channel.
	SendAttachment(ctx context.Context, att *models.Attachment) error
}

type client struct {
	http  *resty.Client
	botID string
}

func NewClient(conf *config.Config) Client {
	http := util.NewRestyClient().
		SetBaseURL(conf.ChatAPI.BaseURL).
		SetAuthToken(conf.ChatAPI.Token)

	return &client{
		http:  http,
		botID: conf.ChatAPI.BotID,
	}
}

type sendMessageResponse struct {
	MessageID string `json:"message_id"`
}

func (c *client) SendMessage(ctx context.Context, msg *models.OutgoingMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var out sendMessageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Sender-ID", c.botID).
		SetBody(msg).
		SetResult(&out).
		Post(fmt.Sprintf("/channels/%s/messages", msg.ChannelID))
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("send message: status %d", resp.StatusCode())
	}

	return out.MessageID, nil
}

func (c *client) UpdateMessage(ctx context.Context, update *models.MessageUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Sender-ID", c.botID).
		SetBody(update).
		Patch(fmt.Sprintf("/channels/%s/messages/%s", update.ChannelID, update.MessageID))
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("update message: status %d", resp.StatusCode())
	}

	return nil
}

func (c *client) SendAttachment(ctx context.Context, att *models.Attachment) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Sender-ID", c.botID).
		SetFileReader("file", att.FileName, bytes.NewReader(att.Content)).
		SetFormData(map[string]string{"mime_type": att.MIMEType}).
		Post(fmt.Sprintf("/channels/%s/attachments", att.ChannelID))
	if err != nil {
		return fmt.Errorf("send attachment: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("send attachment: status %d", resp.StatusCode())
	}

	return nil
}
