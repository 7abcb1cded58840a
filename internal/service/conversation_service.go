// internal/service/conversation_service.go
package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/leadleopard-backend/internal/classify"
	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
	"github.com/unclebandit/leadleopard-backend/internal/quota"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
	"github.com/unclebandit/leadleopard-backend/internal/responder"
)

type ConversationService struct {
	ConversationRepo repository.ConversationRepositoryInterface
	Platform         platform.Client
	Responder        *responder.Adapter
	Quota            *quota.Tracker

	// AgentUsername is recorded as the sender of agent-authored messages.
	AgentUsername string
	// EnableAutoResponse gates all automated replies.
	EnableAutoResponse bool
	// RequireApproval holds drafted replies for an operator instead of
	// sending them.
	RequireApproval bool
}

// ProcessInbound runs one inbound DM through the conversation state machine
// and returns the reply that was sent, or "" when none was.
func (s *ConversationService) ProcessInbound(dm platform.InboundDM) (string, error) {
	conversation, err := s.ConversationRepo.GetByUserID(dm.UserID)
	if err != nil {
		return "", err
	}
	if conversation == nil {
		conversation, err = s.ConversationRepo.Create(dm.UserID, dm.Username, model.ConversationContext{
			LastInteraction: time.Now(),
		})
		if err != nil {
			return "", err
		}
	}

	// The platform re-reports unresponded threads on every poll; drop
	// messages we already processed.
	if dm.MessageID != "" && conversation.Context.LastInboundID == dm.MessageID {
		return "", nil
	}

	if err := s.ConversationRepo.AppendMessage(&model.Message{
		ConversationID: conversation.ID,
		ExternalID:     dm.MessageID,
		SenderUsername: dm.Username,
		Content:        dm.Content,
		MessageType:    dm.MessageType,
		IsFromAgent:    false,
	}); err != nil {
		return "", err
	}

	analysis := s.Responder.Analyze(dm.Content)

	ctx := conversation.Context
	ctx.MessageCount++
	ctx.LastMessage = dm.Content
	ctx.LastInboundID = dm.MessageID
	ctx.LastSentiment = analysis.Sentiment
	ctx.LastIntent = analysis.Intent
	ctx.LastUrgency = analysis.Urgency
	ctx.LastInteraction = time.Now()

	// Stage is not sticky: every outreach response re-classifies.
	if classify.IsOutreachResponse(dm.Content) {
		ctx.IsOutreachResponse = true
		ctx.OutreachStage = string(classify.DetermineStage(dm.Content))
	}

	reply := s.decideReply(dm.Content, ctx, analysis)
	if reply == "" {
		// No reply will ever go out for this message; mark it processed.
		return "", s.ConversationRepo.UpdateContext(conversation.ID, ctx)
	}

	if s.RequireApproval {
		log.Printf("✋ Reply to @%s held for operator approval: %.50s\n", dm.Username, reply)
		return "", s.ConversationRepo.UpdateContext(conversation.ID, ctx)
	}

	if !s.Quota.TryConsume(quota.KindDM) {
		// Context is not persisted, so the next poll reprocesses this DM and
		// retries the reply once the window resets. The appended inbound
		// message dedupes on its external id.
		log.Printf("DM quota exhausted, deferring reply to @%s\n", dm.Username)
		return "", nil
	}

	if err := s.Platform.SendDM(dm.UserID, reply); err != nil {
		// No record of an unsent reply; the message still counts as
		// processed, the account keeps its unanswered DM.
		log.Printf("⚠️ Failed to send reply to @%s: %v\n", dm.Username, err)
		return "", s.ConversationRepo.UpdateContext(conversation.ID, ctx)
	}

	if err := s.ConversationRepo.AppendMessage(&model.Message{
		ConversationID: conversation.ID,
		ExternalID:     "agent_" + uuid.NewString(),
		SenderUsername: s.AgentUsername,
		Content:        reply,
		IsFromAgent:    true,
	}); err != nil {
		log.Println("⚠️ Failed to record agent message:", err)
	}

	ctx.LastResponse = reply
	ctx.ResponseTime = time.Now()
	if err := s.ConversationRepo.UpdateContext(conversation.ID, ctx); err != nil {
		log.Println("⚠️ Failed to update conversation context:", err)
	}

	log.Printf("Response sent to @%s: %.50s...\n", dm.Username, reply)
	return reply, nil
}

// decideReply picks the reply text. High urgency preempts stage routing;
// outreach responses use the stage template; everything else goes through
// the generic responder.
func (s *ConversationService) decideReply(content string, ctx model.ConversationContext, analysis responder.Sentiment) string {
	if !s.EnableAutoResponse {
		return ""
	}

	conversationContext := responder.BuildContext(ctx)

	if analysis.Urgency == "high" {
		return s.Responder.Reply(content, conversationContext)
	}

	if ctx.IsOutreachResponse {
		if reply, ok := s.Responder.StageReply(classify.Stage(ctx.OutreachStage)); ok {
			return reply
		}
	}

	return s.Responder.Reply(content, conversationContext)
}

// Summary returns the conversation context plus its most recent messages.
func (s *ConversationService) Summary(platformUserID string) (*ConversationSummary, error) {
	conversation, err := s.ConversationRepo.GetByUserID(platformUserID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, nil
	}

	messages, err := s.ConversationRepo.RecentMessages(conversation.ID, 10)
	if err != nil {
		return nil, err
	}

	return &ConversationSummary{
		Username:        conversation.Username,
		IsActive:        conversation.IsActive,
		LastMessageTime: conversation.LastMessageTime,
		Context:         conversation.Context,
		RecentMessages:  messages,
	}, nil
}

type ConversationSummary struct {
	Username        string                    `json:"username"`
	IsActive        bool                      `json:"is_active"`
	LastMessageTime time.Time                 `json:"last_message_time"`
	Context         model.ConversationContext `json:"context"`
	RecentMessages  []model.Message           `json:"recent_messages"`
}
