package models

import "time"

// ChatEvent is the envelope delivered by the chat platform, either over Kafka
// or through the webhook endpoints.
type ChatEvent struct {
	Pattern string    `json:"pattern"`
	Data    EventData `json:"data"`
}

const (
	PatternMessageCreated     = "message.created"
	PatternInteractionCreated = "interaction.created"
)

type EventData struct {
	Message     *MessageEvent     `json:"message,omitempty"`
	Interaction *InteractionEvent `json:"interaction,omitempty"`
}

// Author identifies who produced a message or interaction.
type Author struct {
	ID          string `json:"id" validate:"required"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
	IsBot       bool   `json:"is_bot"`
}

// MessageEvent is an inbound channel message.
type MessageEvent struct {
	MessageID string    `json:"message_id" validate:"required"`
	GuildID   string    `json:"guild_id"`
	ChannelID string    `json:"channel_id" validate:"required"`
	Author    Author    `json:"author" validate:"required"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Navigation actions carried by interaction events.
const (
	ActionPrev = "prev"
	ActionNext = "next"
)

// InteractionEvent is a button press on one of the bot's own messages.
type InteractionEvent struct {
	InteractionID string `json:"interaction_id" validate:"required"`
	GuildID       string `json:"guild_id"`
	ChannelID     string `json:"channel_id" validate:"required"`
	MessageID     string `json:"message_id" validate:"required"`
	Author        Author `json:"author" validate:"required"`
	Action        string `json:"action" validate:"required,oneof=prev next"`
}
