package models

// OutgoingMessage is what the bot sends back to a channel.
type OutgoingMessage struct {
	ChannelID string    `json:"channel_id"`
	Content   string    `json:"content"`
	Embed     *Embed    `json:"embed,omitempty"`
	Controls  *Controls `json:"controls,omitempty"`
}

// MessageUpdate edits a previously sent message in place.
type MessageUpdate struct {
	ChannelID string    `json:"channel_id"`
	MessageID string    `json:"message_id"`
	Content   string    `json:"content"`
	Controls  *Controls `json:"controls,omitempty"`
}

// Controls are the navigation affordances attached to a paginated message.
// Each side is enabled independently based on the current page bounds.
type Controls struct {
	PrevEnabled bool `json:"prev_enabled"`
	NextEnabled bool `json:"next_enabled"`
}

type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Attachment is a file sent alongside a message, used by export.
type Attachment struct {
	ChannelID string `json:"channel_id"`
	FileName  string `json:"file_name"`
	MIMEType  string `json:"mime_type"`
	Content   []byte `json:"content"`
}
