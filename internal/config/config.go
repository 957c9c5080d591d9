package config

import (
	"log/slog"
	"os"
)

type Config struct {
	ProjectID   string
	Region      string
	LogLevel    string
	VertexModel string
	Port        string
}

func New() *Config {
	return &Config{
		ProjectID:   os.Getenv("PROJECTID"),
		Region:      os.Getenv("REGION"),
		LogLevel:    os.Getenv("LOGLEVEL"),
		VertexModel: os.Getenv("VERTEXMODEL"),
		Port:        portOrDefault(os.Getenv("PORT")),
	}
}

func portOrDefault(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}

// SlogLevel maps the configured level string to slog, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
