package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/unclebandit/leadleopard-backend/internal/config"
	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
	"github.com/unclebandit/leadleopard-backend/internal/queue"
	"github.com/unclebandit/leadleopard-backend/internal/quota"
	"github.com/unclebandit/leadleopard-backend/internal/responder"
	"github.com/unclebandit/leadleopard-backend/internal/service"
)

func testSettings() *config.Settings {
	return &config.Settings{
		StudioName:    "Test Studio",
		StudioWebsite: "https://test.example",
		StudioEmail:   "hello@test.example",
	}
}

func newOutreachFixture(accounts ...*model.TargetAccount) (*service.OutreachService, *MockAccountRepo, *MockCampaignRepo, *platform.MockClient, *MockEventBus) {
	client := platform.NewMockClient()
	accountRepo := NewMockAccountRepo(accounts...)
	campaignRepo := NewMockCampaignRepo(&model.Campaign{
		ID:             1,
		Name:           "Dubai Real Estate",
		TargetIndustry: "real_estate",
		TargetLocation: "dubai",
		Status:         model.CampaignActive,
	})
	events := &MockEventBus{}

	svc := &service.OutreachService{
		AccountRepo:  accountRepo,
		CampaignRepo: campaignRepo,
		Platform:     client,
		Responder:    responder.NewAdapter(nil, testSettings()),
		Quota:        quota.NewTracker(10, 50),
		Events:       events,
		Sleep:        func(time.Duration) {},
		Jitter:       func() time.Duration { return 0 },
	}
	return svc, accountRepo, campaignRepo, client, events
}

func pendingAccount(username string) *model.TargetAccount {
	return &model.TargetAccount{
		Username: username,
		Category: "real_estate",
		Status:   model.AccountPending,
	}
}

func TestExecuteBatchContactsPendingAccount(t *testing.T) {
	svc, accountRepo, campaignRepo, client, events := newOutreachFixture(pendingAccount("dubai_homes"))

	results, err := svc.ExecuteBatch(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ExecuteBatch returned error: %v", err)
	}
	if results.Success != 1 || results.Failed != 0 || results.Skipped != 0 {
		t.Fatalf("unexpected results: %+v", results)
	}

	if len(client.Sent) != 1 {
		t.Fatalf("expected 1 DM sent, got %d", len(client.Sent))
	}

	account := accountRepo.Accounts["dubai_homes"]
	if account.Status != model.AccountContacted {
		t.Errorf("expected status contacted, got %s", account.Status)
	}
	if account.ContactAttempts != 1 {
		t.Errorf("expected 1 contact attempt, got %d", account.ContactAttempts)
	}
	if account.LastContacted == nil {
		t.Error("expected last_contacted to be set")
	}

	if len(events.Published) != 1 || events.Published[0].Type != queue.EventContacted {
		t.Errorf("expected one contacted event, got %+v", events.Published)
	}
	if campaignRepo.Campaigns[1].ResponsesReceived != 1 {
		t.Errorf("expected batch success reflected in campaign statistics, got %d",
			campaignRepo.Campaigns[1].ResponsesReceived)
	}
}

func TestExecuteBatchSkipsCooldownAndExhaustedAccounts(t *testing.T) {
	sixDaysAgo := time.Now().Add(-6 * 24 * time.Hour)
	eightDaysAgo := time.Now().Add(-8 * 24 * time.Hour)

	// Pending accounts with prior contact history still honor the cooldown
	// and attempt cap.
	cooling := pendingAccount("cooling_off")
	cooling.LastContacted = &sixDaysAgo
	cooling.ContactAttempts = 1

	eligible := pendingAccount("cooled_down")
	eligible.LastContacted = &eightDaysAgo
	eligible.ContactAttempts = 1

	exhausted := pendingAccount("exhausted")
	exhausted.LastContacted = &eightDaysAgo
	exhausted.ContactAttempts = 3

	svc, _, _, client, _ := newOutreachFixture(cooling, eligible, exhausted)
	client.Profiles = append(client.Profiles, platform.Profile{UserID: "77", Username: "cooled_down"})

	results, err := svc.ExecuteBatch(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ExecuteBatch returned error: %v", err)
	}
	if results.Skipped != 2 {
		t.Errorf("expected 2 skipped (cooldown + attempt cap), got %d", results.Skipped)
	}
	if results.Success != 1 {
		t.Errorf("expected the 8-day-old account to be contacted, got %d successes", results.Success)
	}
	if len(client.Sent) != 1 {
		t.Errorf("expected exactly 1 send, got %d", len(client.Sent))
	}
}

func TestExecuteBatchStopsWhenQuotaExhausted(t *testing.T) {
	svc, accountRepo, _, client, _ := newOutreachFixture(
		pendingAccount("dubai_homes"),
		pendingAccount("marina_builders"),
		pendingAccount("skyline_arch"),
	)
	svc.Quota = quota.NewTracker(1, 50) // one DM permit only

	results, err := svc.ExecuteBatch(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ExecuteBatch returned error: %v", err)
	}
	if results.Success != 1 {
		t.Fatalf("expected 1 success before quota stop, got %d", results.Success)
	}
	if len(client.Sent) != 1 {
		t.Errorf("expected 1 send, got %d", len(client.Sent))
	}

	// Quota exhaustion stops the batch; untouched accounts stay pending and
	// are not counted as failed or skipped.
	if results.Failed != 0 || results.Skipped != 0 {
		t.Errorf("quota stop must not count remaining accounts: %+v", results)
	}
	pending := 0
	for _, a := range accountRepo.Accounts {
		if a.Status == model.AccountPending {
			pending++
		}
	}
	if pending != 2 {
		t.Errorf("expected 2 accounts left pending, got %d", pending)
	}
}

func TestExecuteBatchPreservesOutreachPermitWhenDMDenied(t *testing.T) {
	svc, _, _, client, _ := newOutreachFixture(pendingAccount("dubai_homes"))
	svc.Quota = quota.NewTracker(0, 1) // no DM permits, one outreach permit

	results, err := svc.ExecuteBatch(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ExecuteBatch returned error: %v", err)
	}
	if results.Success != 0 || len(client.Sent) != 0 {
		t.Fatalf("expected no sends with DM quota exhausted, got %+v", results)
	}

	// The DM window denied; the daily outreach permit must still be there.
	if !svc.Quota.TryConsume(quota.KindOutreach) {
		t.Error("expected the outreach permit to survive a DM quota denial")
	}
}

func TestExecuteBatchHoldsForOperatorApproval(t *testing.T) {
	svc, accountRepo, _, client, _ := newOutreachFixture(pendingAccount("dubai_homes"))
	svc.RequireApproval = true

	results, err := svc.ExecuteBatch(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ExecuteBatch returned error: %v", err)
	}
	if results.Skipped != 1 || results.Success != 0 {
		t.Fatalf("expected the account held for approval, got %+v", results)
	}
	if len(client.Sent) != 0 {
		t.Errorf("oversight mode must not send, got %d sends", len(client.Sent))
	}
	if accountRepo.Accounts["dubai_homes"].Status != model.AccountPending {
		t.Error("held account must stay pending")
	}
}

func TestExecuteBatchCountsSendFailure(t *testing.T) {
	svc, accountRepo, _, client, events := newOutreachFixture(pendingAccount("dubai_homes"))
	client.FailSend = true

	results, err := svc.ExecuteBatch(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ExecuteBatch returned error: %v", err)
	}
	if results.Failed != 1 || results.Success != 0 {
		t.Fatalf("expected 1 failed, got %+v", results)
	}

	account := accountRepo.Accounts["dubai_homes"]
	if account.Status != model.AccountPending {
		t.Errorf("failed send must leave account pending, got %s", account.Status)
	}
	if account.ContactAttempts != 0 {
		t.Errorf("failed send must not count an attempt, got %d", account.ContactAttempts)
	}
	if len(events.Published) != 0 {
		t.Errorf("failed send must not publish events, got %+v", events.Published)
	}
}

func TestExecuteBatchStopsOnCancelledContext(t *testing.T) {
	svc, _, _, client, _ := newOutreachFixture(
		pendingAccount("dubai_homes"),
		pendingAccount("marina_builders"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := svc.ExecuteBatch(ctx, 1, 5)
	if err != nil {
		t.Fatalf("ExecuteBatch returned error: %v", err)
	}
	if results.Success != 0 || len(client.Sent) != 0 {
		t.Errorf("cancelled context must prevent any sends, got %+v, %d sent", results, len(client.Sent))
	}
}

func TestMonitorResponsesPublishesOutreachResponses(t *testing.T) {
	contacted := pendingAccount("dubai_homes")
	contacted.Status = model.AccountContacted

	svc, _, _, client, events := newOutreachFixture(contacted)
	client.QueueInbound(platform.InboundDM{
		UserID: "9001", Username: "dubai_homes", MessageID: "m1",
		Content: "Thanks for reaching out, tell me more about your services",
	})
	client.QueueInbound(platform.InboundDM{
		UserID: "9999", Username: "random_user", MessageID: "m2",
		Content: "hmm",
	})

	responses, err := svc.MonitorResponses()
	if err != nil {
		t.Fatalf("MonitorResponses returned error: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 outreach response, got %d", len(responses))
	}
	if responses[0].Username != "dubai_homes" {
		t.Errorf("expected response from dubai_homes, got %s", responses[0].Username)
	}
	if len(events.Published) != 1 || events.Published[0].Type != queue.EventResponse {
		t.Fatalf("expected one response event, got %+v", events.Published)
	}
	if events.Published[0].Category != "real_estate" {
		t.Errorf("expected event category real_estate, got %s", events.Published[0].Category)
	}
}

func TestEngageFollowsAndLikes(t *testing.T) {
	svc, _, _, client, _ := newOutreachFixture()

	if err := svc.Engage("dubai_homes"); err != nil {
		t.Fatalf("Engage returned error: %v", err)
	}
	if len(client.Followed) != 1 || client.Followed[0] != "9001" {
		t.Errorf("expected follow of user 9001, got %v", client.Followed)
	}
	if client.Liked["dubai_homes"] != 3 {
		t.Errorf("expected 3 likes, got %d", client.Liked["dubai_homes"])
	}
}
