// internal/model/message.go
package model

import "time"

// Message is append-only: rows are never updated once written.
type Message struct {
	ID             int       `db:"id" json:"id"`
	ConversationID int       `db:"conversation_id" json:"conversation_id"`
	ExternalID     string    `db:"external_id" json:"external_id"`
	SenderUsername string    `db:"sender_username" json:"sender_username"`
	Content        string    `db:"content" json:"content"`
	MessageType    string    `db:"message_type" json:"message_type"` // text, other
	IsFromAgent    bool      `db:"is_from_agent" json:"is_from_agent"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
