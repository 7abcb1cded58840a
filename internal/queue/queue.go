package queue

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	appErrors "github.com/unclebandit/leadleopard-backend/internal/errors"
	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
)

// TopicLeadEvents carries account-lifecycle events from the engine loops to
// the statistics subscriber.
const TopicLeadEvents = "lead_events"

type EventType string

const (
	EventContacted  EventType = "account_contacted"
	EventResponse   EventType = "response_received"
	EventConversion EventType = "conversion"
)

// LeadEvent is one account-lifecycle notification.
type LeadEvent struct {
	Type     EventType `json:"type"`
	Username string    `json:"username"`
	Category string    `json:"category"`
}

// Queue interface
type Queue interface {
	Publish(topic string, event LeadEvent) error
	Subscribe(topic string, handler func(event LeadEvent) error) error
}

// InMemoryQueue dispatches events to in-process subscribers with retry.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(event LeadEvent) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(event LeadEvent) error),
	}
}

// Publish sends an event to all subscribers
func (q *InMemoryQueue) Publish(topic string, event LeadEvent) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processEvent(handler, event)
	}

	return nil
}

// processEvent handles retries and errors
func (q *InMemoryQueue) processEvent(handler func(event LeadEvent) error, event LeadEvent) {
	const maxRetries = 3
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := handler(event)
		if err == nil {
			return // ACK
		}

		log.Printf("Lead event failed (attempt %d/%d): %+v, error: %v\n", attempt+1, maxRetries, event, err)

		if attempt == maxRetries {
			log.Printf("Lead event permanently failed after %d attempts: %+v\n", maxRetries, event)
			return // No requeue
		}

		// Backoff before retry
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(event LeadEvent) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartLeadEventSubscriber wires the statistics consumer: responses mark the
// account responded and bump responses_received on matching active campaigns;
// conversions bump the conversions counter the same way.
func StartLeadEventSubscriber(q Queue, campaignRepo repository.CampaignRepositoryInterface, accountRepo repository.AccountRepositoryInterface) {
	err := q.Subscribe(TopicLeadEvents, func(event LeadEvent) error {
		switch event.Type {
		case EventContacted:
			log.Printf("📤 Outreach sent to @%s\n", event.Username)
			return nil

		case EventResponse:
			log.Printf("📩 Outreach response from @%s\n", event.Username)
			transitioned, err := accountRepo.MarkResponded(event.Username)
			if err != nil {
				var invalid *appErrors.ErrInvalidTransition
				var notFound *appErrors.ErrAccountNotFound
				if errors.As(err, &invalid) || errors.As(err, &notFound) {
					log.Println("⚠️ Skipping response event:", err)
					return nil // retrying won't help
				}
				log.Println("⚠️ Failed to mark account responded:", err)
				return err
			}
			if !transitioned {
				// Re-polled DM for an account that already responded; the
				// statistics were bumped the first time.
				return nil
			}
			return bumpMatchingCampaigns(campaignRepo, event.Category, campaignRepo.AddResponses)

		case EventConversion:
			log.Printf("🎉 Conversion: @%s\n", event.Username)
			return bumpMatchingCampaigns(campaignRepo, event.Category, campaignRepo.AddConversions)
		}

		log.Println("⚠️ Unknown lead event type:", event.Type)
		return nil
	})

	if err != nil {
		log.Println("⚠️ Failed to start subscriber for lead_events:", err)
	}
}

func bumpMatchingCampaigns(repo repository.CampaignRepositoryInterface, category string, add func(campaignID, n int) error) error {
	campaigns, err := repo.ListByStatus(model.CampaignActive)
	if err != nil {
		return err
	}
	for _, c := range campaigns {
		if c.TargetIndustry != category {
			continue
		}
		if err := add(c.ID, 1); err != nil {
			log.Println("⚠️ Failed to update campaign counter:", err)
		}
	}
	return nil
}
