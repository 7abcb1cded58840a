// internal/platform/mock.go
package platform

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// SentDM records one outbound send made through the mock.
type SentDM struct {
	UserID string
	Text   string
}

// MockClient is a deterministic in-memory stand-in for the platform client,
// used when no credentials are configured and by tests.
type MockClient struct {
	mu       sync.Mutex
	loggedIn bool

	Profiles []Profile
	Inbound  []InboundDM
	Sent     []SentDM
	Followed []string
	Liked    map[string]int

	// FailSend makes SendDM return an error, for failure-path tests.
	FailSend bool
	// FailSearch makes SearchAccounts return an error per call.
	FailSearch bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Liked: make(map[string]int),
		Profiles: []Profile{
			{
				UserID: "9001", Username: "dubai_homes", FullName: "Dubai Homes Realty",
				Bio: "Luxury real estate in Dubai Marina", FollowerCount: 5400,
				FollowingCount: 420, PostCount: 310, IsBusiness: true, Location: "Dubai",
			},
			{
				UserID: "9002", Username: "marina_builders", FullName: "Marina Builders",
				Bio: "General contractor, construction projects across UAE", FollowerCount: 2100,
				FollowingCount: 180, PostCount: 95, IsBusiness: true, Location: "Dubai",
			},
			{
				UserID: "9003", Username: "skyline_arch", FullName: "Skyline Architecture",
				Bio: "Architectural design studio", FollowerCount: 8700,
				FollowingCount: 600, PostCount: 240, Location: "Abu Dhabi",
			},
		},
	}
}

func (m *MockClient) Login() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggedIn = true
	return nil
}

func (m *MockClient) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggedIn = false
}

// PollInbound drains the queued inbound messages.
func (m *MockClient) PollInbound() ([]InboundDM, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Inbound
	m.Inbound = nil
	return out, nil
}

// QueueInbound stages a message for the next PollInbound call.
func (m *MockClient) QueueInbound(dm InboundDM) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dm.Timestamp.IsZero() {
		dm.Timestamp = time.Now()
	}
	m.Inbound = append(m.Inbound, dm)
}

func (m *MockClient) SendDM(userID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSend {
		return fmt.Errorf("mock send failed")
	}
	m.Sent = append(m.Sent, SentDM{UserID: userID, Text: text})
	return nil
}

// SearchAccounts returns profiles whose bio or name contains any of the
// keywords, case-insensitive.
func (m *MockClient) SearchAccounts(keywords []string, location string, maxResults int) ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSearch {
		return nil, fmt.Errorf("mock search failed")
	}

	var hits []Profile
	for _, p := range m.Profiles {
		haystack := strings.ToLower(p.Bio + " " + p.FullName)
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				hits = append(hits, p)
				break
			}
		}
		if maxResults > 0 && len(hits) >= maxResults {
			break
		}
	}
	return hits, nil
}

func (m *MockClient) GetProfile(username string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Profiles {
		if m.Profiles[i].Username == username {
			p := m.Profiles[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *MockClient) Follow(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Followed = append(m.Followed, userID)
	return nil
}

func (m *MockClient) LikeRecent(username string, maxPosts int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Liked[username] += maxPosts
	return maxPosts, nil
}

var _ Client = (*MockClient)(nil)
