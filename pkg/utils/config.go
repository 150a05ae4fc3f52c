package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig holds the page sizes of each listing surface.
type CatalogConfig struct {
	BrowsePageSize  int
	SearchPageSize  int
	AdminPageSize   int
	HomeSectionSize int
}

// LoadConfig reads envFile (if it exists) and then the process environment.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	if envFile == "" {
		envFile = ".env"
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "streamvault")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BROWSE_PAGE_SIZE", 24)
	v.SetDefault("SEARCH_PAGE_SIZE", 20)
	v.SetDefault("ADMIN_PAGE_SIZE", 20)
	v.SetDefault("HOME_SECTION_SIZE", 12)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine, everything can come from the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			BrowsePageSize:  v.GetInt("BROWSE_PAGE_SIZE"),
			SearchPageSize:  v.GetInt("SEARCH_PAGE_SIZE"),
			AdminPageSize:   v.GetInt("ADMIN_PAGE_SIZE"),
			HomeSectionSize: v.GetInt("HOME_SECTION_SIZE"),
		},
	}

	return config, nil
}
