// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds every recognized environment option with its default.
type Settings struct {
	// Platform credentials
	InstagramUsername string
	InstagramPassword string

	// Infrastructure
	DatabaseURL string
	RabbitMQURL string

	// Studio identity used in templates
	StudioName        string
	StudioDescription string
	StudioWebsite     string
	StudioEmail       string

	// Targeting
	TargetLocations  []string
	TargetIndustries []string
	TargetKeywords   []string

	// Rate limiting
	MaxDMPerHour            int
	MaxOutreachPerDay       int
	MinDelayBetweenMessages int // seconds

	// Safety switches
	EnableAutoResponse     bool
	EnableAutoOutreach     bool
	HumanOversightRequired bool
}

// Load reads .env (if present) and the process environment.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	return &Settings{
		InstagramUsername: getEnv("INSTAGRAM_USERNAME", ""),
		InstagramPassword: getEnv("INSTAGRAM_PASSWORD", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		StudioName:        getEnv("STUDIO_NAME", "Your Creative Studio"),
		StudioDescription: getEnv("STUDIO_DESCRIPTION", "Professional creative services"),
		StudioWebsite:     getEnv("STUDIO_WEBSITE", "https://yourstudio.com"),
		StudioEmail:       getEnv("STUDIO_EMAIL", "hello@yourstudio.com"),

		TargetLocations:  getEnvList("TARGET_LOCATIONS", "Dubai,UAE"),
		TargetIndustries: getEnvList("TARGET_INDUSTRIES", "real_estate,property,construction,architecture"),
		TargetKeywords:   getEnvList("TARGET_KEYWORDS", "real estate,dubai properties,property development,real estate marketing"),

		MaxDMPerHour:            getEnvInt("MAX_DM_PER_HOUR", 10),
		MaxOutreachPerDay:       getEnvInt("MAX_OUTREACH_PER_DAY", 50),
		MinDelayBetweenMessages: getEnvInt("MIN_DELAY_BETWEEN_MESSAGES", 300),

		EnableAutoResponse:     getEnvBool("ENABLE_AUTO_RESPONSE", true),
		EnableAutoOutreach:     getEnvBool("ENABLE_AUTO_OUTREACH", true),
		HumanOversightRequired: getEnvBool("HUMAN_OVERSIGHT_REQUIRED", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using default %d\n", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true")
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
