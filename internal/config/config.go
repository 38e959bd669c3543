package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	AuthSecret string

	// OpenAI-compatible completion endpoint used for homework and
	// daily-question generation.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// SES share-link mailer. Disabled when SESFromEmail is empty.
	SESRegion    string
	SESFromEmail string
	SESFromName  string

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:  addr,
		PublicURL: envOr("PUBLIC_URL", "http://localhost:3000"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		AuthSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-5.1"),

		SESRegion:    envOr("SES_REGION", "us-east-1"),
		SESFromEmail: os.Getenv("SES_FROM_EMAIL"),
		SESFromName:  envOr("SES_FROM_NAME", "Smart Tutor"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
