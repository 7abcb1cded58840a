// internal/service/outreach_service.go
package service

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/unclebandit/leadleopard-backend/internal/classify"
	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
	"github.com/unclebandit/leadleopard-backend/internal/queue"
	"github.com/unclebandit/leadleopard-backend/internal/quota"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
	"github.com/unclebandit/leadleopard-backend/internal/responder"
)

const (
	// Minimum elapsed time before an account may be re-contacted.
	contactCooldown = 7 * 24 * time.Hour
	maxContactAttempts = 3
)

// BatchResult reports what happened to each account in one executor batch.
type BatchResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type OutreachService struct {
	AccountRepo  repository.AccountRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
	Platform     platform.Client
	Responder    *responder.Adapter
	Quota        *quota.Tracker
	Events       queue.Queue

	// RequireApproval holds every outreach send for an operator instead of
	// sending automatically.
	RequireApproval bool

	// MinDelay is the fixed pause after every successful send.
	MinDelay time.Duration
	// Sleep is time.Sleep unless a test injects a stub.
	Sleep func(time.Duration)
	// Jitter produces the extra randomized human-pacing delay.
	Jitter func() time.Duration
}

func (s *OutreachService) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (s *OutreachService) jitter() time.Duration {
	if s.Jitter != nil {
		return s.Jitter()
	}
	return time.Duration(30+rand.Intn(91)) * time.Second
}

// ExecuteBatch contacts up to batchSize pending accounts for a campaign,
// oldest first, one send in flight at a time. Quota exhaustion stops the
// batch early; the untouched accounts stay pending for the next cycle.
func (s *OutreachService) ExecuteBatch(ctx context.Context, campaignID, batchSize int) (BatchResult, error) {
	var results BatchResult

	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return results, err
	}

	accounts, err := s.AccountRepo.ListPending(campaign.TargetIndustry, campaign.TargetLocation, batchSize)
	if err != nil {
		return results, err
	}

	for _, account := range accounts {
		if ctx.Err() != nil {
			break // shutdown: finish nothing new, current account is done
		}

		if s.shouldSkip(account) {
			results.Skipped++
			continue
		}

		if s.RequireApproval {
			log.Printf("✋ Outreach to @%s held for operator approval\n", account.Username)
			results.Skipped++
			continue
		}

		// Hourly DM permit first: if it denies, the daily outreach permit is
		// untouched for the next cycle.
		if !s.Quota.TryConsume(quota.KindDM) || !s.Quota.TryConsume(quota.KindOutreach) {
			log.Println("Outreach quota exhausted, stopping batch early")
			break
		}

		profile, err := s.Platform.GetProfile(account.Username)
		if err != nil || profile == nil {
			if err != nil {
				log.Printf("⚠️ Profile fetch failed for @%s: %v\n", account.Username, err)
			}
			results.Failed++
			continue
		}

		message := s.Responder.Outreach(*profile)

		if err := s.Platform.SendDM(profile.UserID, message); err != nil {
			log.Printf("⚠️ Failed to send outreach to @%s: %v\n", account.Username, err)
			results.Failed++
			continue
		}

		if err := s.AccountRepo.MarkContacted(account.Username, time.Now()); err != nil {
			log.Println("⚠️ Failed to mark account contacted:", err)
		}
		if s.Events != nil {
			if err := s.Events.Publish(queue.TopicLeadEvents, queue.LeadEvent{
				Type:     queue.EventContacted,
				Username: account.Username,
				Category: account.Category,
			}); err != nil {
				log.Println("⚠️ Failed to publish contacted event:", err)
			}
		}
		results.Success++

		// Fixed minimum plus randomized jitter, to stay under the
		// platform's abuse heuristics.
		s.sleep(s.MinDelay + s.jitter())
	}

	if results.Success > 0 {
		if err := s.CampaignRepo.AddResponses(campaignID, results.Success); err != nil {
			log.Println("⚠️ Failed to update campaign statistics:", err)
		}
	}

	log.Printf("Outreach batch for campaign %d: %+v\n", campaignID, results)
	return results, nil
}

// shouldSkip is the eligibility gate: cooldown, attempt cap, absorbing
// statuses. Skips are counted, never logged as errors.
func (s *OutreachService) shouldSkip(account *model.TargetAccount) bool {
	if account.LastContacted != nil && time.Since(*account.LastContacted) < contactCooldown {
		return true
	}
	if account.ContactAttempts >= maxContactAttempts {
		return true
	}
	if account.Status == model.AccountBlocked || account.Status == model.AccountNotInterested {
		return true
	}
	return false
}

// MonitorResponses scans unresponded inbound DMs for outreach responses,
// publishes a response event for each, and returns them for conversation
// processing.
func (s *OutreachService) MonitorResponses() ([]platform.InboundDM, error) {
	inbound, err := s.Platform.PollInbound()
	if err != nil {
		return nil, err
	}

	var responses []platform.InboundDM
	for _, dm := range inbound {
		if !classify.IsOutreachResponse(dm.Content) {
			continue
		}
		responses = append(responses, dm)

		if s.Events != nil {
			account, err := s.AccountRepo.Find(dm.Username)
			if err != nil || account == nil {
				continue // not one of our targets
			}
			if err := s.Events.Publish(queue.TopicLeadEvents, queue.LeadEvent{
				Type:     queue.EventResponse,
				Username: dm.Username,
				Category: account.Category,
			}); err != nil {
				log.Println("⚠️ Failed to publish response event:", err)
			}
		}
	}
	return responses, nil
}

// Engage warms an account up: follow it and like a few recent posts.
func (s *OutreachService) Engage(username string) error {
	profile, err := s.Platform.GetProfile(username)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	if err := s.Platform.Follow(profile.UserID); err != nil {
		log.Printf("⚠️ Failed to follow @%s: %v\n", username, err)
	}

	liked, err := s.Platform.LikeRecent(username, 3)
	if err != nil {
		log.Printf("⚠️ Failed to like posts of @%s: %v\n", username, err)
		return nil
	}

	log.Printf("Engaged with @%s: followed and liked %d posts\n", username, liked)
	return nil
}
