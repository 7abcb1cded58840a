// internal/handler/status_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
	"github.com/unclebandit/leadleopard-backend/internal/service"
)

// StatusHandler serves the agent status snapshot and conversation summaries.
type StatusHandler struct {
	CampaignRepo     repository.CampaignRepositoryInterface
	AccountRepo      repository.AccountRepositoryInterface
	ConversationRepo repository.ConversationRepositoryInterface
	Conversations    *service.ConversationService
}

func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	activeConversations, err := h.ConversationRepo.CountActive()
	if err != nil {
		log.Println("❌ Error counting conversations:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	accountCounts, err := h.AccountRepo.CountByStatus("")
	if err != nil {
		log.Println("❌ Error counting accounts:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	activeCampaigns, err := h.CampaignRepo.ListByStatus(model.CampaignActive)
	if err != nil {
		log.Println("❌ Error listing campaigns:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"active_conversations": activeConversations,
		"active_campaigns":     len(activeCampaigns),
		"accounts_by_status":   accountCounts,
		"last_update":          time.Now().UTC().Format(time.RFC3339),
	})
}

// GetCampaignWithStats returns a campaign plus the account pipeline counts
// for its target industry.
func (h *StatusHandler) GetCampaignWithStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := h.CampaignRepo.GetByID(id)
	if err != nil {
		log.Println("❌ Error fetching campaign:", err)
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pipeline, err := h.AccountRepo.CountByStatus(campaign.TargetIndustry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign": campaign,
		"pipeline": pipeline,
	})
}

func (h *StatusHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	summary, err := h.Conversations.Summary(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary == nil {
		http.Error(w, "conversation not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
