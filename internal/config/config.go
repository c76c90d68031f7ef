package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken     string
	TelegramDebug     bool
	BaseAdminChatID   int64
	DatabaseURL       string
	Timezone          string
	Location          *time.Location
	DefaultShiftRange string
	LogLevel          logrus.Level
}

var instance *BotConfig
var once sync.Once

func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatal(err)
		}
		instance = cfg
	})

	return instance
}

// Load reads the configuration from the environment.
func Load() (*BotConfig, error) {
	cfg := &BotConfig{}

	cfg.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	if cfg.TelegramToken == "" {
		return nil, errMissing("TELEGRAM_BOT_TOKEN")
	}

	cfg.BaseAdminChatID = getEnvAsInt("BASE_ADMIN_CHAT_ID", -2)
	if cfg.BaseAdminChatID == -2 {
		return nil, errMissing("BASE_ADMIN_CHAT_ID")
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "calendar.db")
	cfg.TelegramDebug = getEnvAsBool("TELEGRAM_DEBUG", false)
	cfg.DefaultShiftRange = getEnv("DEFAULT_SHIFT_RANGE", "08:00-17:00")

	cfg.Timezone = getEnv("TIMEZONE", "Europe/Madrid")
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logrus.WithError(err).Warnf("unknown timezone %q, using UTC", cfg.Timezone)
		loc = time.UTC
	}
	cfg.Location = loc

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	cfg.LogLevel = level

	return cfg, nil
}

type missingError string

func (e missingError) Error() string {
	return "missing required env variable " + string(e)
}

func errMissing(key string) error {
	return missingError(key)
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}
