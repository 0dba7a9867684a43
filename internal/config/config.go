// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Storage StorageConfig
	ELT     ELTConfig
	Log     LogConfig
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type ELTConfig struct {
	Prefix         string
	LocalDirectory string
	MetadataFile   string
	Extension      string
	ISODateColumns []string
	DryRun         bool
	RunMode        string
	OutputDir      string
	PreviewRows    int
}

type LogConfig struct {
	Level string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
		viper.SetDefault("S3_BUCKET", "alpha-hmcts-de-testing-sandbox")
		viper.SetDefault("S3_REGION", "eu-west-1")
		viper.SetDefault("S3_USE_SSL", true)
		viper.SetDefault("ELT_PREFIX", "de-intro-project-jb/dev")
		viper.SetDefault("ELT_LOCAL_DIR", "./data/example-data")
		viper.SetDefault("ELT_METADATA_FILE", "./data/metadata/intro-project-metadata.json")
		viper.SetDefault("ELT_EXTENSION", ".parquet")
		viper.SetDefault("ELT_ISO_DATE_COLUMNS", []string{"date_of_birth"})
		viper.SetDefault("ELT_DRY_RUN", false)
		viper.SetDefault("ELT_RUN_MODE", "write")
		viper.SetDefault("ELT_OUTPUT_DIR", "./data/output-data")
		viper.SetDefault("ELT_PREVIEW_ROWS", 5)
		viper.SetDefault("LOG_LEVEL", "info")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Storage: StorageConfig{
				Endpoint:  viper.GetString("S3_ENDPOINT"),
				AccessKey: viper.GetString("S3_ACCESS_KEY"),
				SecretKey: viper.GetString("S3_SECRET_KEY"),
				Bucket:    viper.GetString("S3_BUCKET"),
				Region:    viper.GetString("S3_REGION"),
				UseSSL:    viper.GetBool("S3_USE_SSL"),
			},
			ELT: ELTConfig{
				Prefix:         viper.GetString("ELT_PREFIX"),
				LocalDirectory: viper.GetString("ELT_LOCAL_DIR"),
				MetadataFile:   viper.GetString("ELT_METADATA_FILE"),
				Extension:      viper.GetString("ELT_EXTENSION"),
				ISODateColumns: viper.GetStringSlice("ELT_ISO_DATE_COLUMNS"),
				DryRun:         viper.GetBool("ELT_DRY_RUN"),
				RunMode:        viper.GetString("ELT_RUN_MODE"),
				OutputDir:      viper.GetString("ELT_OUTPUT_DIR"),
				PreviewRows:    viper.GetInt("ELT_PREVIEW_ROWS"),
			},
			Log: LogConfig{
				Level: viper.GetString("LOG_LEVEL"),
			},
		}
	})

	return instance
}
