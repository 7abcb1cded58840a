// internal/controller/campaign_controller.go
package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/queue"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
	"github.com/unclebandit/leadleopard-backend/internal/responder"
	"github.com/unclebandit/leadleopard-backend/internal/service"
)

type CampaignController struct {
	CampaignRepo repository.CampaignRepositoryInterface
	AccountRepo  repository.AccountRepositoryInterface
	Discovery    *service.DiscoveryService
	Outreach     *service.OutreachService
	Responder    *responder.Adapter
	Events       queue.Queue
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name            string `json:"name"`
		TargetIndustry  string `json:"target_industry"`
		TargetLocation  string `json:"target_location"`
		MessageTemplate string `json:"message_template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	template := body.MessageTemplate
	if template == "" {
		template = responder.DefaultTemplate(body.TargetIndustry)
	}

	campaign := &model.Campaign{
		Name:            body.Name,
		TargetIndustry:  body.TargetIndustry,
		TargetLocation:  body.TargetLocation,
		MessageTemplate: template,
		Status:          model.CampaignActive,
	}
	if err := c.CampaignRepo.Create(campaign); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	campaigns, total, err := c.CampaignRepo.ListCampaigns(offset, pageSize, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": campaigns,
		"pagination": map[string]int{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": totalPages,
		},
	})
}

func (c *CampaignController) UpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := c.CampaignRepo.UpdateStatus(id, model.CampaignStatus(body.Status)); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": body.Status})
}

// RunDiscovery triggers account discovery for a campaign synchronously.
func (c *CampaignController) RunDiscovery(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		MaxAccounts int `json:"max_accounts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.MaxAccounts <= 0 {
		body.MaxAccounts = 100
	}

	accounts, err := c.Discovery.DiscoverTargets(id, body.MaxAccounts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign_id": id,
		"discovered":  len(accounts),
		"accounts":    accounts,
	})
}

// RunBatch triggers one executor batch for a campaign synchronously.
func (c *CampaignController) RunBatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		BatchSize int `json:"batch_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.BatchSize <= 0 {
		body.BatchSize = 10
	}

	results, err := c.Outreach.ExecuteBatch(context.Background(), id, body.BatchSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign_id": id,
		"results":     results,
	})
}

// OutreachPreview renders the campaign template for a stored account without
// sending anything.
func (c *CampaignController) OutreachPreview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignRepo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	account, err := c.AccountRepo.Find(body.Username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if account == nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	vars := c.Responder.StudioVars()
	vars["username"] = account.Username
	vars["full_name"] = account.FullName
	vars["location"] = account.Location
	vars["category"] = account.Category

	rendered := responder.RenderTemplate(campaign.MessageTemplate, vars)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rendered_message": rendered,
		"username":         account.Username,
	})
}

// MarkConverted records an operator-confirmed conversion.
func (c *CampaignController) MarkConverted(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	account, err := c.AccountRepo.Find(username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if account == nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	if err := c.AccountRepo.UpdateStatus(username, model.AccountConverted); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if c.Events != nil {
		if err := c.Events.Publish(queue.TopicLeadEvents, queue.LeadEvent{
			Type:     queue.EventConversion,
			Username: username,
			Category: account.Category,
		}); err != nil {
			log.Println("⚠️ Failed to publish conversion event:", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"username": username, "status": string(model.AccountConverted)})
}

// Engage follows an account and likes its recent posts.
func (c *CampaignController) Engage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := c.Outreach.Engage(username); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"username": username, "engaged": "true"})
}
