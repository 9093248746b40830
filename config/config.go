package config

import (
	"log"

	"github.com/spf13/viper"

	"shiftwise/schedule"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Cloudinary (worker avatars).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Shift reminders are enqueued this many minutes before the shift starts.
	ReminderLeadMinutes int `mapstructure:"REMINDER_LEAD_MINUTES"`

	// Calendar rendering window. Validated at boot; the server refuses to
	// start on a window that cannot produce sane geometry.
	CalendarDayStartMin   int     `mapstructure:"CALENDAR_DAY_START_MIN"`
	CalendarDayEndMin     int     `mapstructure:"CALENDAR_DAY_END_MIN"`
	CalendarSlotMinutes   int     `mapstructure:"CALENDAR_SLOT_MINUTES"`
	CalendarSlotHeightPx  float64 `mapstructure:"CALENDAR_SLOT_HEIGHT_PX"`
	CalendarMinBlockPx    float64 `mapstructure:"CALENDAR_MIN_BLOCK_PX"`
	CalendarGutterPercent float64 `mapstructure:"CALENDAR_GUTTER_PERCENT"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "shiftwise")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("CALENDAR_DAY_START_MIN", 0)
	viper.SetDefault("CALENDAR_DAY_END_MIN", 24*60)
	viper.SetDefault("CALENDAR_SLOT_MINUTES", 30)
	viper.SetDefault("CALENDAR_SLOT_HEIGHT_PX", 30.0)
	viper.SetDefault("CALENDAR_MIN_BLOCK_PX", 20.0)
	viper.SetDefault("CALENDAR_GUTTER_PERCENT", 2.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if _, err := CalendarWindow(); err != nil {
		log.Fatalf("Invalid calendar configuration: %v", err)
	}
}

// CalendarWindow builds the rendering window from the loaded configuration.
func CalendarWindow() (schedule.Window, error) {
	return schedule.NewWindow(
		AppConfig.CalendarDayStartMin,
		AppConfig.CalendarDayEndMin,
		AppConfig.CalendarSlotMinutes,
		AppConfig.CalendarSlotHeightPx,
		AppConfig.CalendarMinBlockPx,
		AppConfig.CalendarGutterPercent,
	)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
