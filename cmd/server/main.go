// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/leadleopard-backend/internal/config"
	"github.com/unclebandit/leadleopard-backend/internal/controller"
	"github.com/unclebandit/leadleopard-backend/internal/db"
	"github.com/unclebandit/leadleopard-backend/internal/handler"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
	"github.com/unclebandit/leadleopard-backend/internal/queue"
	"github.com/unclebandit/leadleopard-backend/internal/quota"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
	"github.com/unclebandit/leadleopard-backend/internal/responder"
	"github.com/unclebandit/leadleopard-backend/internal/service"
)

func main() {
	// config.Load reads .env itself
	settings := config.Load()

	// Init DB
	db.Init()

	accountRepo := &repository.AccountRepository{DB: db.DB}
	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	conversationRepo := &repository.ConversationRepository{DB: db.DB}

	var events queue.Queue
	if settings.RabbitMQURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(settings.RabbitMQURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		events = amqpQueue
	} else {
		events = queue.NewInMemoryQueue()
	}
	queue.StartLeadEventSubscriber(events, campaignRepo, accountRepo)

	client := platform.NewMockClient()
	tracker := quota.NewTracker(settings.MaxDMPerHour, settings.MaxOutreachPerDay)
	replies := responder.NewAdapter(nil, settings)

	globalTerms := append(append([]string{}, settings.TargetKeywords...), settings.TargetIndustries...)
	globalTerms = append(globalTerms, settings.TargetLocations...)

	discovery := &service.DiscoveryService{
		AccountRepo:  accountRepo,
		CampaignRepo: campaignRepo,
		Platform:     client,
		GlobalTerms:  globalTerms,
	}

	outreach := &service.OutreachService{
		AccountRepo:     accountRepo,
		CampaignRepo:    campaignRepo,
		Platform:        client,
		Responder:       replies,
		Quota:           tracker,
		Events:          events,
		RequireApproval: settings.HumanOversightRequired,
		MinDelay:        time.Duration(settings.MinDelayBetweenMessages) * time.Second,
	}

	conversations := &service.ConversationService{
		ConversationRepo:   conversationRepo,
		Platform:           client,
		Responder:          replies,
		Quota:              tracker,
		AgentUsername:      settings.InstagramUsername,
		EnableAutoResponse: settings.EnableAutoResponse,
		RequireApproval:    settings.HumanOversightRequired,
	}

	campaignController := &controller.CampaignController{
		CampaignRepo: campaignRepo,
		AccountRepo:  accountRepo,
		Discovery:    discovery,
		Outreach:     outreach,
		Responder:    replies,
		Events:       events,
	}

	statusHandler := &handler.StatusHandler{
		CampaignRepo:     campaignRepo,
		AccountRepo:      accountRepo,
		ConversationRepo: conversationRepo,
		Conversations:    conversations,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", statusHandler.GetCampaignWithStats)
	r.Patch("/campaigns/{id}/status", campaignController.UpdateCampaignStatus)
	r.Post("/campaigns/{id}/discover", campaignController.RunDiscovery)
	r.Post("/campaigns/{id}/batch", campaignController.RunBatch)
	r.Post("/campaigns/{id}/outreach-preview", campaignController.OutreachPreview)

	// Account routes
	r.Post("/accounts/{username}/converted", campaignController.MarkConverted)
	r.Post("/accounts/{username}/engage", campaignController.Engage)

	// Status routes
	r.Get("/status", statusHandler.GetStatus)
	r.Get("/conversations/{userID}", statusHandler.GetConversation)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
