package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		_ = godotenv.Load()

		viper.AutomaticEnv()

		viper.BindEnv("cron_schedule", "CRON_SCHEDULE")
		viper.BindEnv("max_concurrent_requests", "MAX_CONCURRENT_REQUESTS")
		viper.BindEnv("retry_count", "RETRY_COUNT")
		viper.BindEnv("fetch_timeout_seconds", "FETCH_TIMEOUT_SECONDS")
		viper.BindEnv("user_agent", "USER_AGENT")
		viper.BindEnv("db_path", "DB_PATH")
		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("smtp_host", "SMTP_HOST")
		viper.BindEnv("smtp_port", "SMTP_PORT")
		viper.BindEnv("smtp_user", "SMTP_USER")
		viper.BindEnv("smtp_password", "SMTP_PASSWORD")
		viper.BindEnv("smtp_from", "SMTP_FROM")

		viper.SetDefault("cron_schedule", "*/15 * * * *")
		viper.SetDefault("max_concurrent_requests", 5)
		viper.SetDefault("retry_count", 3)
		viper.SetDefault("fetch_timeout_seconds", 15)
		viper.SetDefault("user_agent", "price-tracker-bot/1.0")
		viper.SetDefault("db_path", "/app/data/tracker.db")
		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("smtp_port", 587)
		viper.SetDefault("debug", false)
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}
