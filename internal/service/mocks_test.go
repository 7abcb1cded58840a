package service_test

import (
	"errors"
	"time"

	appErrors "github.com/unclebandit/leadleopard-backend/internal/errors"
	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/queue"
)

// Mock repositories

type MockAccountRepo struct {
	Accounts map[string]*model.TargetAccount

	FindErr   error
	UpsertErr error
}

func NewMockAccountRepo(accounts ...*model.TargetAccount) *MockAccountRepo {
	repo := &MockAccountRepo{Accounts: map[string]*model.TargetAccount{}}
	for _, a := range accounts {
		repo.Accounts[a.Username] = a
	}
	return repo
}

func (m *MockAccountRepo) Find(username string) (*model.TargetAccount, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.Accounts[username], nil
}

func (m *MockAccountRepo) Upsert(a *model.TargetAccount) (bool, error) {
	if m.UpsertErr != nil {
		return false, m.UpsertErr
	}
	if _, exists := m.Accounts[a.Username]; exists {
		return false, nil
	}
	m.Accounts[a.Username] = a
	return true, nil
}

func (m *MockAccountRepo) ListPending(industry, location string, limit int) ([]*model.TargetAccount, error) {
	var out []*model.TargetAccount
	for _, a := range m.Accounts {
		if len(out) >= limit {
			break
		}
		if a.Status == model.AccountPending && a.Category == industry {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAccountRepo) MarkContacted(username string, when time.Time) error {
	a, ok := m.Accounts[username]
	if !ok {
		return appErrors.NewAccountNotFound(username)
	}
	a.Status = model.AccountContacted
	a.ContactAttempts++
	a.LastContacted = &when
	return nil
}

func (m *MockAccountRepo) MarkResponded(username string) (bool, error) {
	a, ok := m.Accounts[username]
	if !ok {
		return false, appErrors.NewAccountNotFound(username)
	}
	if a.Status == model.AccountResponded || a.Status == model.AccountConverted {
		return false, nil
	}
	a.Status = model.AccountResponded
	return true, nil
}

func (m *MockAccountRepo) UpdateStatus(username string, status model.AccountStatus) error {
	a, ok := m.Accounts[username]
	if !ok {
		return appErrors.NewAccountNotFound(username)
	}
	if !model.ValidAccountTransition(a.Status, status) {
		return appErrors.NewInvalidTransition("account", string(a.Status), string(status))
	}
	a.Status = status
	return nil
}

func (m *MockAccountRepo) CountByStatus(industry string) (map[model.AccountStatus]int, error) {
	counts := map[model.AccountStatus]int{}
	for _, a := range m.Accounts {
		if industry == "" || a.Category == industry {
			counts[a.Status]++
		}
	}
	return counts, nil
}

type MockCampaignRepo struct {
	Campaigns map[int]*model.Campaign
}

func NewMockCampaignRepo(campaigns ...*model.Campaign) *MockCampaignRepo {
	repo := &MockCampaignRepo{Campaigns: map[int]*model.Campaign{}}
	for _, c := range campaigns {
		repo.Campaigns[c.ID] = c
	}
	return repo
}

func (m *MockCampaignRepo) Create(c *model.Campaign) error { return nil }

func (m *MockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	c, ok := m.Campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	return c, nil
}

func (m *MockCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	return nil, 0, nil
}

func (m *MockCampaignRepo) ListByStatus(status model.CampaignStatus) ([]*model.Campaign, error) {
	var out []*model.Campaign
	for _, c := range m.Campaigns {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCampaignRepo) UpdateStatus(campaignID int, status model.CampaignStatus) error {
	c, ok := m.Campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	c.Status = status
	return nil
}

func (m *MockCampaignRepo) AddTargeted(campaignID, n int) error {
	c, ok := m.Campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	c.AccountsTargeted += n
	return nil
}

func (m *MockCampaignRepo) AddResponses(campaignID, n int) error {
	c, ok := m.Campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	c.ResponsesReceived += n
	return nil
}

func (m *MockCampaignRepo) AddConversions(campaignID, n int) error {
	c, ok := m.Campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	c.Conversions += n
	return nil
}

type MockConversationRepo struct {
	Conversations map[string]*model.Conversation
	Messages      map[int][]model.Message
	nextID        int

	UpdateContextErr error
}

func NewMockConversationRepo() *MockConversationRepo {
	return &MockConversationRepo{
		Conversations: map[string]*model.Conversation{},
		Messages:      map[int][]model.Message{},
	}
}

func (m *MockConversationRepo) GetByUserID(platformUserID string) (*model.Conversation, error) {
	return m.Conversations[platformUserID], nil
}

func (m *MockConversationRepo) Create(platformUserID, username string, ctx model.ConversationContext) (*model.Conversation, error) {
	m.nextID++
	c := &model.Conversation{
		ID:             m.nextID,
		PlatformUserID: platformUserID,
		Username:       username,
		Context:        ctx,
		IsActive:       true,
	}
	m.Conversations[platformUserID] = c
	return c, nil
}

func (m *MockConversationRepo) UpdateContext(conversationID int, ctx model.ConversationContext) error {
	if m.UpdateContextErr != nil {
		return m.UpdateContextErr
	}
	for _, c := range m.Conversations {
		if c.ID == conversationID {
			c.Context = ctx
			return nil
		}
	}
	return errors.New("conversation not found")
}

func (m *MockConversationRepo) AppendMessage(msg *model.Message) error {
	for _, existing := range m.Messages[msg.ConversationID] {
		if existing.ExternalID == msg.ExternalID {
			return nil
		}
	}
	m.Messages[msg.ConversationID] = append(m.Messages[msg.ConversationID], *msg)
	return nil
}

func (m *MockConversationRepo) RecentMessages(conversationID, limit int) ([]model.Message, error) {
	msgs := m.Messages[conversationID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (m *MockConversationRepo) CountActive() (int, error) {
	n := 0
	for _, c := range m.Conversations {
		if c.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *MockConversationRepo) MarkInactiveBefore(cutoff time.Time) (int, error) {
	n := 0
	for _, c := range m.Conversations {
		if c.IsActive && c.LastMessageTime.Before(cutoff) {
			c.IsActive = false
			n++
		}
	}
	return n, nil
}

// MockEventBus records published lead events.
type MockEventBus struct {
	Published []queue.LeadEvent
}

func (m *MockEventBus) Publish(topic string, event queue.LeadEvent) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *MockEventBus) Subscribe(topic string, handler func(queue.LeadEvent) error) error {
	return nil
}
