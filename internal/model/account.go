// internal/model/account.go
package model

import "time"

// AccountStatus is the lifecycle state of a target account.
type AccountStatus string

const (
	AccountPending       AccountStatus = "pending"
	AccountContacted     AccountStatus = "contacted"
	AccountResponded     AccountStatus = "responded"
	AccountConverted     AccountStatus = "converted"
	AccountBlocked       AccountStatus = "blocked"
	AccountNotInterested AccountStatus = "not_interested"
)

// accountTransitions is the allowed forward edges. blocked and not_interested
// are reachable from any non-absorbing state and have no outgoing edges.
var accountTransitions = map[AccountStatus][]AccountStatus{
	AccountPending:   {AccountContacted, AccountBlocked, AccountNotInterested},
	AccountContacted: {AccountResponded, AccountBlocked, AccountNotInterested},
	AccountResponded: {AccountConverted, AccountBlocked, AccountNotInterested},
	AccountConverted: {AccountBlocked, AccountNotInterested},
}

// ValidAccountTransition reports whether from -> to is an allowed status change.
// Same-status updates are treated as no-ops and allowed.
func ValidAccountTransition(from, to AccountStatus) bool {
	if from == to {
		return true
	}
	for _, next := range accountTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type TargetAccount struct {
	ID             int           `db:"id" json:"id"`
	Username       string        `db:"username" json:"username"`
	FullName       string        `db:"full_name" json:"full_name"`
	Bio            string        `db:"bio" json:"bio"`
	FollowerCount  int           `db:"follower_count" json:"follower_count"`
	FollowingCount int           `db:"following_count" json:"following_count"`
	PostCount      int           `db:"post_count" json:"post_count"`
	IsVerified     bool          `db:"is_verified" json:"is_verified"`
	IsBusiness     bool          `db:"is_business" json:"is_business"`
	IsPrivate      bool          `db:"is_private" json:"is_private"`
	Category       string        `db:"category" json:"category"`
	Location       string        `db:"location" json:"location"`
	LastContacted  *time.Time    `db:"last_contacted" json:"last_contacted,omitempty"`
	ContactAttempts int          `db:"contact_attempts" json:"contact_attempts"`
	Status         AccountStatus `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time    `db:"updated_at" json:"updated_at,omitempty"`
}
