package classify_test

import (
	"testing"

	"github.com/unclebandit/leadleopard-backend/internal/classify"
)

func TestDetermineStage(t *testing.T) {
	cases := []struct {
		text string
		want classify.Stage
	}{
		{"What's your pricing?", classify.StagePricingInquiry},
		{"How much for a shoot?", classify.StagePricingInquiry},
		{"Can I see your portfolio?", classify.StagePortfolioRequest},
		{"Do you have samples of your work?", classify.StagePortfolioRequest},
		{"Can we set up a call?", classify.StageMeetingRequest},
		{"Let's discuss next week", classify.StageMeetingRequest},
		{"I'm interested, tell me more", classify.StageInitialInterest},
		{"hello", classify.StageInitial},
		{"asdfgh", classify.StageInitial},
	}

	for _, c := range cases {
		if got := classify.DetermineStage(c.text); got != c.want {
			t.Errorf("DetermineStage(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestStagePriorityOrder(t *testing.T) {
	// Pricing keywords outrank meeting keywords when both appear.
	got := classify.DetermineStage("can we talk about your pricing")
	if got != classify.StagePricingInquiry {
		t.Errorf("expected pricing to win over meeting, got %s", got)
	}

	// Portfolio outranks interest.
	got = classify.DetermineStage("interested in seeing your portfolio")
	if got != classify.StagePortfolioRequest {
		t.Errorf("expected portfolio to win over interest, got %s", got)
	}
}

func TestIsOutreachResponse(t *testing.T) {
	if !classify.IsOutreachResponse("thanks, interested!") {
		t.Error("expected 'thanks, interested!' to be an outreach response")
	}
	if !classify.IsOutreachResponse("Hello THERE") {
		t.Error("matching should be case-insensitive")
	}
	if classify.IsOutreachResponse("asdfgh") {
		t.Error("expected gibberish to not be an outreach response")
	}
}
