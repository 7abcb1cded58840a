// internal/responder/responder.go
package responder

import (
	"fmt"
	"hash/fnv"
	"log"
	"strings"

	"github.com/unclebandit/leadleopard-backend/internal/classify"
	"github.com/unclebandit/leadleopard-backend/internal/config"
	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
)

// Sentiment is the analysis result for one inbound message.
type Sentiment struct {
	Sentiment string `json:"sentiment"` // positive, negative, neutral
	Intent    string `json:"intent"`    // inquiry, complaint, compliment, other
	Urgency   string `json:"urgency"`   // high, medium, low
}

// NeutralSentiment is the fallback when analysis is unavailable.
var NeutralSentiment = Sentiment{Sentiment: "neutral", Intent: "other", Urgency: "low"}

// Generator is the external response-generation capability (LLM-backed in
// production). Any error or empty result makes the adapter fall back to a
// deterministic template; generator failures never reach callers.
type Generator interface {
	GenerateReply(text, conversationContext string) (string, error)
	GenerateOutreach(profile platform.Profile) (string, error)
	AnalyzeSentiment(text string) (Sentiment, error)
}

// Adapter wraps the generator behind a contract that always produces a
// usable string.
type Adapter struct {
	Generator Generator // nil means template-only mode

	StudioName        string
	StudioDescription string
	StudioWebsite     string
	StudioEmail       string
}

func NewAdapter(gen Generator, settings *config.Settings) *Adapter {
	return &Adapter{
		Generator:         gen,
		StudioName:        settings.StudioName,
		StudioDescription: settings.StudioDescription,
		StudioWebsite:     settings.StudioWebsite,
		StudioEmail:       settings.StudioEmail,
	}
}

// Reply produces a generic conversational reply.
func (a *Adapter) Reply(text, conversationContext string) string {
	if a.Generator != nil {
		reply, err := a.Generator.GenerateReply(text, conversationContext)
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply
		}
		if err != nil {
			log.Println("⚠️ reply generator failed, using fallback:", err)
		}
	}
	return a.fallbackReply(text)
}

// Outreach produces a personalized first-contact message for a profile.
func (a *Adapter) Outreach(profile platform.Profile) string {
	if a.Generator != nil {
		msg, err := a.Generator.GenerateOutreach(profile)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
		if err != nil {
			log.Println("⚠️ outreach generator failed, using fallback:", err)
		}
	}
	username := profile.Username
	if username == "" {
		username = "there"
	}
	return fmt.Sprintf("Hi @%s! 👋 I love your content! %s specializes in creative services for businesses like yours. Would love to discuss how we can help elevate your brand! Check us out: %s",
		username, a.StudioName, a.StudioWebsite)
}

// Analyze runs sentiment analysis, defaulting to neutral/other/low on any
// failure.
func (a *Adapter) Analyze(text string) Sentiment {
	if a.Generator == nil {
		return NeutralSentiment
	}
	s, err := a.Generator.AnalyzeSentiment(text)
	if err != nil {
		log.Println("⚠️ sentiment analysis failed, defaulting to neutral:", err)
		return NeutralSentiment
	}
	if s.Sentiment == "" {
		return NeutralSentiment
	}
	return s
}

// StageReply returns the canned reply for a recognized outreach stage. The
// second return is false for initial/unrecognized stages, where callers
// should use the generic responder instead.
func (a *Adapter) StageReply(stage classify.Stage) (string, bool) {
	switch stage {
	case classify.StageInitialInterest:
		return fmt.Sprintf("Hi! Thanks for your interest! 😊 %s specializes in professional creative services for real estate. We offer photography, videography, and marketing materials. Would you like to see some of our work? Check out %s or I can send you some examples! ✨",
			a.StudioName, a.StudioWebsite), true
	case classify.StagePricingInquiry:
		return fmt.Sprintf("Great question! Our pricing varies based on project scope and requirements. For a detailed quote, I'd love to learn more about your specific needs. Could you tell me about your project? In the meantime, you can see our portfolio at %s 📸",
			a.StudioWebsite), true
	case classify.StagePortfolioRequest:
		return fmt.Sprintf("Absolutely! You can see our full portfolio at %s 📸 We specialize in real estate photography, property videos, and marketing materials. I can also send you some specific examples if you tell me what type of project you have in mind! ✨",
			a.StudioWebsite), true
	case classify.StageMeetingRequest:
		return fmt.Sprintf("That sounds great! I'd love to discuss your project in detail. You can reach us at %s to schedule a consultation, or we can continue chatting here. What's the best way to reach you? 📞",
			a.StudioEmail), true
	}
	return "", false
}

// fallbackReply picks one of the canned replies, keyed by message content so
// repeated runs stay deterministic.
func (a *Adapter) fallbackReply(text string) string {
	replies := []string{
		fmt.Sprintf("Hi! Thanks for reaching out to %s! 😊 I'd love to help you with your creative project. For detailed information about our services, please visit %s or email us at %s.",
			a.StudioName, a.StudioWebsite, a.StudioEmail),
		fmt.Sprintf("Hello! Great to hear from you! %s specializes in professional creative services. Check out our work at %s or contact us at %s for more details!",
			a.StudioName, a.StudioWebsite, a.StudioEmail),
		fmt.Sprintf("Hi there! Thanks for your interest in %s! We'd be happy to discuss your creative needs. Visit %s or email %s for more information.",
			a.StudioName, a.StudioWebsite, a.StudioEmail),
	}
	h := fnv.New32a()
	h.Write([]byte(text))
	return replies[h.Sum32()%uint32(len(replies))]
}

// BuildContext flattens the conversation context into the string the
// generator receives.
func BuildContext(ctx model.ConversationContext) string {
	var parts []string
	if ctx.LastMessage != "" {
		parts = append(parts, "Last message: "+ctx.LastMessage)
	}
	if ctx.LastResponse != "" {
		parts = append(parts, "Last response: "+ctx.LastResponse)
	}
	if ctx.MessageCount > 0 {
		parts = append(parts, fmt.Sprintf("Message count: %d", ctx.MessageCount))
	}
	if ctx.IsOutreachResponse {
		parts = append(parts, "This is a response to our outreach")
	}
	if ctx.OutreachStage != "" {
		parts = append(parts, "Outreach stage: "+ctx.OutreachStage)
	}
	return strings.Join(parts, " | ")
}
