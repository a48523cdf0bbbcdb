package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	MongoURI string
	Database string
	Port     string
	LogLevel logrus.Level
}

// Load reads configuration from the environment, honoring a .env file
// if one is present in the working directory.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	cfg := Config{
		MongoURI: os.Getenv("MONGODB_URI"),
		Database: defaultEnv("MONGODB_DB", "noteapp"),
		Port:     defaultEnv("PORT", "3001"),
		LogLevel: logrus.InfoLevel,
	}

	if cfg.MongoURI == "" {
		return Config{}, errors.New("MONGODB_URI must be set")
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return Config{}, errors.Wrapf(err, "parsing LOG_LEVEL %q", raw)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func defaultEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
