package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	OpsLog    OpsLog    `mapstructure:",squash"`
	Facebook  Facebook  `mapstructure:",squash"`
	TikTok    TikTok    `mapstructure:",squash"`
	LinkedIn  LinkedIn  `mapstructure:",squash"`
	YouTube   YouTube   `mapstructure:",squash"`
	Drive     Drive     `mapstructure:",squash"`
	Pipeline  Pipeline  `mapstructure:",squash"`
	Retry     Retry     `mapstructure:",squash"`
	Scheduler Scheduler `mapstructure:",squash"`
	Reference Reference `mapstructure:"-"`
}

type App struct {
	LogLevel      string `mapstructure:"log_level"`
	ReferenceFile string `mapstructure:"reference_file"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Database describes the destination stores. Every logical database derived
// from an advertiser name lives on the same server (postgres) or directory (sqlite).
type Database struct {
	Driver      string `mapstructure:"database_driver"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	Password    string `mapstructure:"database_password"`
	Maintenance string `mapstructure:"database_maintenance_name"`
	SSLMode     string `mapstructure:"database_sslmode"`
	SQLiteDir   string `mapstructure:"database_sqlite_dir"`
}

// DSNFor builds the DSN of a logical database on the configured server
func (d Database) DSNFor(dbName string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.URL,
		url.PathEscape(dbName),
		d.SSLMode,
	)
}

type OpsLog struct {
	Enabled  bool   `mapstructure:"ops_log_enabled"`
	Database string `mapstructure:"ops_log_database"`
}

type Facebook struct {
	BaseURL      string        `mapstructure:"facebook_base_url"`
	Version      string        `mapstructure:"facebook_version"`
	AccessToken  string        `mapstructure:"facebook_access_token"`
	ChunkDays    int           `mapstructure:"facebook_chunk_days"`
	RequestDelay time.Duration `mapstructure:"facebook_request_delay"`
}

type TikTok struct {
	BaseURL      string        `mapstructure:"tiktok_base_url"`
	AccessToken  string        `mapstructure:"tiktok_access_token"`
	AppID        string        `mapstructure:"tiktok_app_id"`
	Secret       string        `mapstructure:"tiktok_secret"`
	ChunkDays    int           `mapstructure:"tiktok_chunk_days"`
	RequestDelay time.Duration `mapstructure:"tiktok_request_delay"`
}

type LinkedIn struct {
	BaseURL      string        `mapstructure:"linkedin_base_url"`
	Version      string        `mapstructure:"linkedin_version"`
	AccessToken  string        `mapstructure:"linkedin_access_token"`
	ChunkDays    int           `mapstructure:"linkedin_chunk_days"`
	RequestDelay time.Duration `mapstructure:"linkedin_request_delay"`
}

type YouTube struct {
	BaseURL         string        `mapstructure:"youtube_base_url"`
	DeveloperToken  string        `mapstructure:"youtube_developer_token"`
	AccessToken     string        `mapstructure:"youtube_access_token"`
	LoginCustomerID string        `mapstructure:"youtube_login_customer_id"`
	ChunkDays       int           `mapstructure:"youtube_chunk_days"`
	RequestDelay    time.Duration `mapstructure:"youtube_request_delay"`
}

type Drive struct {
	Enabled      bool   `mapstructure:"drive_enabled"`
	FolderID     string `mapstructure:"drive_folder_id"`
	AccessToken  string `mapstructure:"drive_access_token"`
	RegistryPath string `mapstructure:"drive_registry_path"`
}

type Pipeline struct {
	ChunkDays           int    `mapstructure:"chunk_days"`
	HistoricalChunkDays int    `mapstructure:"historical_chunk_days"`
	LookbackDays        int    `mapstructure:"pipeline_lookback_days"`
	MaxConcurrentJobs   int    `mapstructure:"pipeline_max_concurrent_jobs"`
	OutputDir           string `mapstructure:"pipeline_output_dir"`
}

type Retry struct {
	MaxAttempts int           `mapstructure:"retry_max_attempts"`
	BaseDelay   time.Duration `mapstructure:"retry_base_delay"`
	Multiplier  float64       `mapstructure:"retry_multiplier"`
}

type Scheduler struct {
	CronSchedule string `mapstructure:"pipeline_cron"`
	Enabled      bool   `mapstructure:"pipeline_cron_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REFERENCE_FILE", "reference.yaml")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAINTENANCE_NAME", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_SQLITE_DIR", "data")

	viper.SetDefault("OPS_LOG_ENABLED", true)
	viper.SetDefault("OPS_LOG_DATABASE", "etl_logs")

	viper.SetDefault("FACEBOOK_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("FACEBOOK_VERSION", "v21.0")
	viper.SetDefault("FACEBOOK_ACCESS_TOKEN", "")
	viper.SetDefault("FACEBOOK_CHUNK_DAYS", 0)
	viper.SetDefault("FACEBOOK_REQUEST_DELAY", "0s")

	viper.SetDefault("TIKTOK_BASE_URL", "https://business-api.tiktok.com/open_api/v1.3")
	viper.SetDefault("TIKTOK_ACCESS_TOKEN", "")
	viper.SetDefault("TIKTOK_APP_ID", "")
	viper.SetDefault("TIKTOK_SECRET", "")
	viper.SetDefault("TIKTOK_CHUNK_DAYS", 0)
	viper.SetDefault("TIKTOK_REQUEST_DELAY", "0s")

	viper.SetDefault("LINKEDIN_BASE_URL", "https://api.linkedin.com/rest")
	viper.SetDefault("LINKEDIN_VERSION", "202410")
	viper.SetDefault("LINKEDIN_ACCESS_TOKEN", "")
	viper.SetDefault("LINKEDIN_CHUNK_DAYS", 0)
	viper.SetDefault("LINKEDIN_REQUEST_DELAY", "0s")

	viper.SetDefault("YOUTUBE_BASE_URL", "https://googleads.googleapis.com/v17")
	viper.SetDefault("YOUTUBE_DEVELOPER_TOKEN", "")
	viper.SetDefault("YOUTUBE_ACCESS_TOKEN", "")
	viper.SetDefault("YOUTUBE_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("YOUTUBE_CHUNK_DAYS", 0)
	viper.SetDefault("YOUTUBE_REQUEST_DELAY", "0s")

	viper.SetDefault("DRIVE_ENABLED", false)
	viper.SetDefault("DRIVE_FOLDER_ID", "")
	viper.SetDefault("DRIVE_ACCESS_TOKEN", "")
	viper.SetDefault("DRIVE_REGISTRY_PATH", "processed_files.json")

	viper.SetDefault("CHUNK_DAYS", 1)
	viper.SetDefault("HISTORICAL_CHUNK_DAYS", 7)
	viper.SetDefault("PIPELINE_LOOKBACK_DAYS", 1)
	viper.SetDefault("PIPELINE_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("PIPELINE_OUTPUT_DIR", ".")

	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_BASE_DELAY", "1s")
	viper.SetDefault("RETRY_MULTIPLIER", 2.0)

	viper.SetDefault("PIPELINE_CRON", "0 3 * * *") // every day at 03:00
	viper.SetDefault("PIPELINE_CRON_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("using environment loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	reference, err := LoadReference(config.App.ReferenceFile)
	if err != nil {
		return nil, err
	}
	config.Reference = *reference

	return config, nil
}

// ChunkDaysFor resolves a platform window size, falling back to CHUNK_DAYS
func (c *Config) ChunkDaysFor(platformChunkDays int) int {
	if platformChunkDays > 0 {
		return platformChunkDays
	}
	if c.Pipeline.ChunkDays > 0 {
		return c.Pipeline.ChunkDays
	}
	return 1
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug(".env loaded from ", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on process environment")
}
