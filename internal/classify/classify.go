// internal/classify/classify.go
package classify

import "strings"

// Stage is the current topic of an outreach conversation, used to pick a
// reply template.
type Stage string

const (
	StageInitial          Stage = "initial"
	StageInitialInterest  Stage = "initial_interest"
	StagePricingInquiry   Stage = "pricing_inquiry"
	StagePortfolioRequest Stage = "portfolio_request"
	StageMeetingRequest   Stage = "meeting_request"
)

// Keyword rules are evaluated in this fixed priority order; first match wins.
var stageRules = []struct {
	stage    Stage
	keywords []string
}{
	{StagePricingInquiry, []string{"pricing", "cost", "price", "how much"}},
	{StagePortfolioRequest, []string{"portfolio", "work", "examples", "samples"}},
	{StageMeetingRequest, []string{"meeting", "call", "discuss", "talk"}},
	{StageInitialInterest, []string{"interested", "tell me more", "sounds good"}},
}

// responseIndicators is the broader set gating whether a message counts as a
// response to our outreach at all.
var responseIndicators = []string{
	"thank you", "thanks", "interested", "tell me more", "pricing",
	"cost", "services", "portfolio", "website", "contact", "hello",
	"hi", "hey", "sounds good", "looks great",
}

// DetermineStage maps message text to an outreach stage. Matching is a
// case-insensitive substring check.
func DetermineStage(text string) Stage {
	lower := strings.ToLower(text)
	for _, rule := range stageRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.stage
			}
		}
	}
	return StageInitial
}

// IsOutreachResponse reports whether the text looks like a reply to an
// outreach message rather than unrelated conversation.
func IsOutreachResponse(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range responseIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
