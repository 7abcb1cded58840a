package responder_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/unclebandit/leadleopard-backend/internal/classify"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
	"github.com/unclebandit/leadleopard-backend/internal/responder"
)

type failingGenerator struct{}

func (f *failingGenerator) GenerateReply(text, ctx string) (string, error) {
	return "", fmt.Errorf("generator down")
}
func (f *failingGenerator) GenerateOutreach(p platform.Profile) (string, error) {
	return "", fmt.Errorf("generator down")
}
func (f *failingGenerator) AnalyzeSentiment(text string) (responder.Sentiment, error) {
	return responder.Sentiment{}, fmt.Errorf("generator down")
}

func newAdapter(gen responder.Generator) *responder.Adapter {
	return &responder.Adapter{
		Generator:     gen,
		StudioName:    "Acme Studio",
		StudioWebsite: "https://acme.example",
		StudioEmail:   "hello@acme.example",
	}
}

func TestReplyFallsBackDeterministically(t *testing.T) {
	a := newAdapter(&failingGenerator{})

	first := a.Reply("hello there", "")
	second := a.Reply("hello there", "")

	if first == "" {
		t.Fatal("expected a fallback reply, got empty string")
	}
	if first != second {
		t.Error("fallback reply should be deterministic for the same input")
	}
	if !strings.Contains(first, "Acme Studio") {
		t.Errorf("fallback should mention the studio, got %q", first)
	}
}

func TestOutreachFallbackMentionsUsername(t *testing.T) {
	a := newAdapter(nil)

	msg := a.Outreach(platform.Profile{Username: "dubai_homes"})
	if !strings.Contains(msg, "@dubai_homes") {
		t.Errorf("expected username in outreach message, got %q", msg)
	}
}

func TestAnalyzeDefaultsToNeutral(t *testing.T) {
	a := newAdapter(&failingGenerator{})

	s := a.Analyze("anything")
	if s != responder.NeutralSentiment {
		t.Errorf("expected neutral fallback, got %+v", s)
	}
}

func TestStageReplies(t *testing.T) {
	a := newAdapter(nil)

	for _, stage := range []classify.Stage{
		classify.StageInitialInterest,
		classify.StagePricingInquiry,
		classify.StagePortfolioRequest,
		classify.StageMeetingRequest,
	} {
		reply, ok := a.StageReply(stage)
		if !ok || reply == "" {
			t.Errorf("expected a canned reply for stage %s", stage)
		}
	}

	if _, ok := a.StageReply(classify.StageInitial); ok {
		t.Error("initial stage must fall through to the generic responder")
	}
}

func TestRenderTemplate(t *testing.T) {
	got := responder.RenderTemplate("Hi {username} from {studio_name}!", map[string]string{
		"username":    "alice",
		"studio_name": "Acme Studio",
	})
	if got != "Hi alice from Acme Studio!" {
		t.Errorf("unexpected render: %q", got)
	}

	got = responder.RenderTemplate("Hi {username}!", map[string]string{"username": ""})
	if got != "Hi <unknown>!" {
		t.Errorf("empty values should render as <unknown>, got %q", got)
	}
}
