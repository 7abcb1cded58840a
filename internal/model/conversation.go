// internal/model/conversation.go
package model

import "time"

// ConversationContext is the per-conversation state bag, persisted as a JSON
// column. Named fields instead of a loose map so callers can't typo a key.
type ConversationContext struct {
	MessageCount       int       `json:"message_count,omitempty"`
	LastMessage        string    `json:"last_message,omitempty"`
	LastResponse       string    `json:"last_response,omitempty"`
	LastInboundID      string    `json:"last_inbound_id,omitempty"`
	IsOutreachResponse bool      `json:"is_outreach_response,omitempty"`
	OutreachStage      string    `json:"outreach_stage,omitempty"`
	LastSentiment      string    `json:"last_sentiment,omitempty"`
	LastIntent         string    `json:"last_intent,omitempty"`
	LastUrgency        string    `json:"last_urgency,omitempty"`
	LastInteraction    time.Time `json:"last_interaction,omitzero"`
	ResponseTime       time.Time `json:"response_time,omitzero"`
}

type Conversation struct {
	ID              int                 `db:"id" json:"id"`
	PlatformUserID  string              `db:"platform_user_id" json:"platform_user_id"`
	Username        string              `db:"username" json:"username"`
	LastMessageTime time.Time           `db:"last_message_time" json:"last_message_time"`
	Context         ConversationContext `db:"conversation_context" json:"conversation_context"`
	IsActive        bool                `db:"is_active" json:"is_active"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time          `db:"updated_at" json:"updated_at,omitempty"`
}
