// internal/model/campaign.go
package model

import "time"

// CampaignStatus is the lifecycle state of an outreach campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// completed is terminal; active and paused toggle freely.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignActive: {CampaignPaused, CampaignCompleted},
	CampaignPaused: {CampaignActive, CampaignCompleted},
}

// ValidCampaignTransition reports whether from -> to is an allowed status change.
func ValidCampaignTransition(from, to CampaignStatus) bool {
	if from == to {
		return true
	}
	for _, next := range campaignTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Campaign struct {
	ID                int            `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	TargetIndustry    string         `db:"target_industry" json:"target_industry"`
	TargetLocation    string         `db:"target_location" json:"target_location"`
	MessageTemplate   string         `db:"message_template" json:"message_template"`
	Status            CampaignStatus `db:"status" json:"status"`
	AccountsTargeted  int            `db:"accounts_targeted" json:"accounts_targeted"`
	ResponsesReceived int            `db:"responses_received" json:"responses_received"`
	Conversions       int            `db:"conversions" json:"conversions"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}
