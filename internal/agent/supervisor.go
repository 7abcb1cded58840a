// internal/agent/supervisor.go
package agent

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
	"github.com/unclebandit/leadleopard-backend/internal/service"
)

// Supervisor owns the four periodic engine loops. Each loop runs
// independently with its own interval and error backoff, and all of them
// observe cancellation within one polling interval.
type Supervisor struct {
	Platform         platform.Client
	Conversations    *service.ConversationService
	Outreach         *service.OutreachService
	CampaignRepo     repository.CampaignRepositoryInterface
	ConversationRepo repository.ConversationRepositoryInterface

	EnableAutoOutreach bool
	BatchSize          int
	SilenceWindow      time.Duration

	InboundInterval  time.Duration
	InboundBackoff   time.Duration
	ResponseInterval time.Duration
	ResponseBackoff  time.Duration
	BatchInterval    time.Duration
	BatchBackoff     time.Duration
	CleanupInterval  time.Duration
	CleanupBackoff   time.Duration
}

// NewSupervisor applies the default intervals.
func NewSupervisor(
	client platform.Client,
	conversations *service.ConversationService,
	outreach *service.OutreachService,
	campaignRepo repository.CampaignRepositoryInterface,
	conversationRepo repository.ConversationRepositoryInterface,
	enableAutoOutreach bool,
) *Supervisor {
	return &Supervisor{
		Platform:         client,
		Conversations:    conversations,
		Outreach:         outreach,
		CampaignRepo:     campaignRepo,
		ConversationRepo: conversationRepo,

		EnableAutoOutreach: enableAutoOutreach,
		BatchSize:          5,
		SilenceWindow:      7 * 24 * time.Hour,

		InboundInterval:  30 * time.Second,
		InboundBackoff:   60 * time.Second,
		ResponseInterval: 60 * time.Second,
		ResponseBackoff:  300 * time.Second,
		BatchInterval:    3600 * time.Second,
		BatchBackoff:     1800 * time.Second,
		CleanupInterval:  86400 * time.Second,
		CleanupBackoff:   3600 * time.Second,
	}
}

// Run starts the engine and blocks until ctx is cancelled and every loop has
// drained. Login failure is fatal; everything after that retries on the next
// cycle.
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.Platform.Login(); err != nil {
		return err
	}
	log.Println("🚀 Agent started")

	var wg sync.WaitGroup

	loops := []struct {
		name     string
		interval time.Duration
		backoff  time.Duration
		fn       func(context.Context) error
	}{
		{"inbound-poll", s.InboundInterval, s.InboundBackoff, s.pollInbound},
		{"outreach-response-poll", s.ResponseInterval, s.ResponseBackoff, s.pollOutreachResponses},
		{"cleanup", s.CleanupInterval, s.CleanupBackoff, s.cleanup},
	}
	if s.EnableAutoOutreach {
		loops = append(loops, struct {
			name     string
			interval time.Duration
			backoff  time.Duration
			fn       func(context.Context) error
		}{"campaign-batches", s.BatchInterval, s.BatchBackoff, s.runCampaignBatches})
	}

	for _, loop := range loops {
		wg.Add(1)
		go func(name string, interval, backoff time.Duration, fn func(context.Context) error) {
			defer wg.Done()
			s.runLoop(ctx, name, interval, backoff, fn)
		}(loop.name, loop.interval, loop.backoff, loop.fn)
	}

	wg.Wait()

	s.Platform.Logout()
	log.Println("Agent stopped")
	return nil
}

// runLoop executes fn immediately and then on every tick, stretching the
// wait to the backoff interval after an error.
func (s *Supervisor) runLoop(ctx context.Context, name string, interval, backoff time.Duration, fn func(context.Context) error) {
	log.Printf("Starting %s loop (every %s)\n", name, interval)
	for {
		wait := interval
		if err := fn(ctx); err != nil {
			log.Printf("⚠️ %s loop error: %v\n", name, err)
			wait = backoff
		}

		select {
		case <-ctx.Done():
			log.Printf("%s loop stopped\n", name)
			return
		case <-time.After(wait):
		}
	}
}

func (s *Supervisor) pollInbound(ctx context.Context) error {
	inbound, err := s.Platform.PollInbound()
	if err != nil {
		return err
	}

	for _, dm := range inbound {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := s.Conversations.ProcessInbound(dm); err != nil {
			log.Printf("⚠️ Failed to process DM from @%s: %v\n", dm.Username, err)
		}
	}
	return nil
}

func (s *Supervisor) pollOutreachResponses(ctx context.Context) error {
	responses, err := s.Outreach.MonitorResponses()
	if err != nil {
		return err
	}

	for _, dm := range responses {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := s.Conversations.ProcessInbound(dm); err != nil {
			log.Printf("⚠️ Failed to process outreach response from @%s: %v\n", dm.Username, err)
		}
	}
	return nil
}

func (s *Supervisor) runCampaignBatches(ctx context.Context) error {
	campaigns, err := s.CampaignRepo.ListByStatus(model.CampaignActive)
	if err != nil {
		return err
	}

	for _, campaign := range campaigns {
		if ctx.Err() != nil {
			return nil
		}
		log.Println("Running outreach batch for campaign:", campaign.Name)
		if _, err := s.Outreach.ExecuteBatch(ctx, campaign.ID, s.BatchSize); err != nil {
			log.Printf("⚠️ Batch failed for campaign %d: %v\n", campaign.ID, err)
		}
	}
	return nil
}

func (s *Supervisor) cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-s.SilenceWindow)
	n, err := s.ConversationRepo.MarkInactiveBefore(cutoff)
	if err != nil {
		return err
	}
	log.Printf("Marked %d conversations as inactive\n", n)
	return nil
}
