// cmd/agent/main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/unclebandit/leadleopard-backend/internal/agent"
	"github.com/unclebandit/leadleopard-backend/internal/config"
	"github.com/unclebandit/leadleopard-backend/internal/db"
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
	defer db.Close()

	accountRepo := &repository.AccountRepository{DB: db.DB}
	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	conversationRepo := &repository.ConversationRepository{DB: db.DB}

	// Lead-event bus: RabbitMQ when configured, in-memory otherwise.
	var events queue.Queue
	if settings.RabbitMQURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(settings.RabbitMQURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer amqpQueue.Close()
		events = amqpQueue
	} else {
		events = queue.NewInMemoryQueue()
	}
	queue.StartLeadEventSubscriber(events, campaignRepo, accountRepo)

	if settings.InstagramUsername == "" || settings.InstagramPassword == "" {
		log.Println("⚠️ No platform credentials configured, running with the mock client")
	}
	client := platform.NewMockClient()

	tracker := quota.NewTracker(settings.MaxDMPerHour, settings.MaxOutreachPerDay)
	replies := responder.NewAdapter(nil, settings)

	conversations := &service.ConversationService{
		ConversationRepo:   conversationRepo,
		Platform:           client,
		Responder:          replies,
		Quota:              tracker,
		AgentUsername:      settings.InstagramUsername,
		EnableAutoResponse: settings.EnableAutoResponse,
		RequireApproval:    settings.HumanOversightRequired,
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

	supervisor := agent.NewSupervisor(client, conversations, outreach,
		campaignRepo, conversationRepo, settings.EnableAutoOutreach)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := supervisor.Run(ctx); err != nil {
		log.Fatal("Agent failed to start:", err)
	}
}
