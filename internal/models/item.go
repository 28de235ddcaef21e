package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is one captured product reference. Items are immutable after
// insert and only removed by a channel-wide clear.
type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID   string             `bson:"guild_id" json:"guild_id"`
	ChannelID string             `bson:"channel_id" json:"channel_id"`
	URL       string             `bson:"url" json:"url"`
	URLNorm   string             `bson:"url_norm" json:"url_norm"`
	Title     string             `bson:"title" json:"title"`
	Price     *string            `bson:"price,omitempty" json:"price,omitempty"`
	Submitter *string            `bson:"submitter,omitempty" json:"submitter,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (WishlistItem) CollectionName() string {
	return "wishlist_items"
}

// ChannelConfig is one row per (guild, channel) pair ever explicitly toggled.
// An absent row means capture is enabled.
type ChannelConfig struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID   string             `bson:"guild_id" json:"guild_id"`
	ChannelID string             `bson:"channel_id" json:"channel_id"`
	Enabled   bool               `bson:"enabled" json:"enabled"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

func (ChannelConfig) CollectionName() string {
	return "channel_configs"
}
