package config

import (
	"os"
	"strings"
)

// Server holds the API server configuration.
type Server struct {
	HTTPAddr     string
	DBPath       string
	AuthPassword string

	CORSOrigins []string
}

// FromEnv builds a Server config from TRAINER_* environment variables,
// falling back to defaults for unset values.
func FromEnv() Server {
	return Server{
		HTTPAddr:     envOr("TRAINER_ADDR", ":8787"),
		DBPath:       os.Getenv("TRAINER_DB"),
		AuthPassword: os.Getenv("TRAINER_AUTH_PASSWORD"),
		CORSOrigins:  csvOr("TRAINER_CORS_ORIGINS", "*"),
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
	parts := strings.Split(envOr(k, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
