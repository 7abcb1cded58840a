package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/unclebandit/leadleopard-backend/internal/model"
)

type ConversationRepositoryInterface interface {
	// GetByUserID returns nil, nil when no conversation exists for the user.
	GetByUserID(platformUserID string) (*model.Conversation, error)
	Create(platformUserID, username string, ctx model.ConversationContext) (*model.Conversation, error)
	UpdateContext(conversationID int, ctx model.ConversationContext) error
	// AppendMessage ignores duplicates of the same external id within a
	// conversation; messages are never updated or deleted.
	AppendMessage(m *model.Message) error
	RecentMessages(conversationID, limit int) ([]model.Message, error)
	CountActive() (int, error)
	// MarkInactiveBefore deactivates conversations silent since before cutoff
	// and returns how many were affected.
	MarkInactiveBefore(cutoff time.Time) (int, error)
}

type ConversationRepository struct {
	DB *sql.DB
}

func (r *ConversationRepository) GetByUserID(platformUserID string) (*model.Conversation, error) {
	query := `
		SELECT id, platform_user_id, username, last_message_time, conversation_context,
			   is_active, created_at, updated_at
		FROM conversations WHERE platform_user_id=$1
	`
	var c model.Conversation
	var rawContext []byte
	err := r.DB.QueryRow(query, platformUserID).Scan(
		&c.ID, &c.PlatformUserID, &c.Username, &c.LastMessageTime,
		&rawContext, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(rawContext) > 0 {
		if err := json.Unmarshal(rawContext, &c.Context); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *ConversationRepository) Create(platformUserID, username string, ctx model.ConversationContext) (*model.Conversation, error) {
	raw, err := json.Marshal(ctx)
	if err != nil {
		return nil, err
	}

	c := &model.Conversation{
		PlatformUserID:  platformUserID,
		Username:        username,
		Context:         ctx,
		IsActive:        true,
		LastMessageTime: time.Now(),
		CreatedAt:       time.Now(),
	}

	// One conversation per external user: a concurrent create loses the race
	// and re-reads the winner's row.
	query := `
		INSERT INTO conversations (platform_user_id, username, last_message_time, conversation_context, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		ON CONFLICT (platform_user_id) DO NOTHING
		RETURNING id
	`
	err = r.DB.QueryRow(query, platformUserID, username, c.LastMessageTime, raw, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return r.GetByUserID(platformUserID)
		}
		return nil, err
	}
	return c, nil
}

// UpdateContext persists the merged context bag and bumps last_message_time.
func (r *ConversationRepository) UpdateContext(conversationID int, ctx model.ConversationContext) error {
	raw, err := json.Marshal(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE conversations
		SET conversation_context=$1, last_message_time=NOW(), updated_at=NOW()
		WHERE id=$2
	`
	_, err = r.DB.Exec(query, raw, conversationID)
	return err
}

func (r *ConversationRepository) AppendMessage(m *model.Message) error {
	if m.MessageType == "" {
		m.MessageType = "text"
	}
	m.CreatedAt = time.Now()

	query := `
		INSERT INTO messages (conversation_id, external_id, sender_username, content, message_type, is_from_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (conversation_id, external_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRow(query,
		m.ConversationID, m.ExternalID, m.SenderUsername, m.Content,
		m.MessageType, m.IsFromAgent, m.CreatedAt,
	).Scan(&m.ID)
	if err == sql.ErrNoRows {
		return nil // duplicate external id, already recorded
	}
	return err
}

func (r *ConversationRepository) RecentMessages(conversationID, limit int) ([]model.Message, error) {
	query := `
		SELECT id, conversation_id, external_id, sender_username, content, message_type, is_from_agent, created_at
		FROM messages
		WHERE conversation_id=$1
		ORDER BY id DESC
		LIMIT $2
	`
	rows, err := r.DB.Query(query, conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.ExternalID, &m.SenderUsername,
			&m.Content, &m.MessageType, &m.IsFromAgent, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	// Oldest first for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, rows.Err()
}

func (r *ConversationRepository) CountActive() (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM conversations WHERE is_active`).Scan(&n)
	return n, err
}

func (r *ConversationRepository) MarkInactiveBefore(cutoff time.Time) (int, error) {
	query := `
		UPDATE conversations
		SET is_active=FALSE, updated_at=NOW()
		WHERE is_active AND last_message_time < $1
	`
	res, err := r.DB.Exec(query, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

var _ ConversationRepositoryInterface = (*ConversationRepository)(nil)
