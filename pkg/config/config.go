package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	Env               string
	JWTSecret         string
	UploadDir         string
	StoryTTL          time.Duration
	NotificationLimit int
	SweepSchedule     string
	SMTPHost          string
	SMTPPort          string
	SMTPUser          string
	SMTPPassword      string
	MailFrom          string
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		JWTSecret:         getEnv("JWT_SECRET", "supersecretjwtkey"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		StoryTTL:          getDuration("STORY_TTL", 24*time.Hour),
		NotificationLimit: getInt("NOTIFICATION_FEED_LIMIT", 20),
		SweepSchedule:     getEnv("SWEEP_SCHEDULE", "* * * * *"),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		MailFrom:          getEnv("MAIL_FROM", "DevSocial Security <no-reply@devsocial.dev>"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
