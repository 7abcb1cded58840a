// internal/platform/client.go
package platform

import "time"

// Profile is the fixed output contract for account lookups.
type Profile struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	PostCount      int    `json:"post_count"`
	IsVerified     bool   `json:"is_verified"`
	IsBusiness     bool   `json:"is_business"`
	IsPrivate      bool   `json:"is_private"`
	ExternalURL    string `json:"external_url"`
	Location       string `json:"location"`
}

// InboundDM is one unresponded inbound direct message.
type InboundDM struct {
	ThreadID    string    `json:"thread_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	MessageID   string    `json:"message_id"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type"`
	Timestamp   time.Time `json:"timestamp"`
}

// Client is the social-platform capability the engine depends on. The real
// implementation lives outside this repository; MockClient covers dev and
// test runs.
type Client interface {
	Login() error
	Logout()
	PollInbound() ([]InboundDM, error)
	SendDM(userID, text string) error
	SearchAccounts(keywords []string, location string, maxResults int) ([]Profile, error)
	GetProfile(username string) (*Profile, error)
	Follow(userID string) error
	LikeRecent(username string, maxPosts int) (int, error)
}
