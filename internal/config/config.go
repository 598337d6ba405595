package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	Pipeline struct {
		CallTimeoutSeconds int `yaml:"callTimeoutSeconds"`
	} `yaml:"pipeline"`

	ImageHost struct {
		// imgbb (default) or minio
		Backend       string `yaml:"backend"`
		ImgBBEndpoint string `yaml:"imgbbEndpoint"`
	} `yaml:"imageHost"`

	Search struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"search"`

	Appraise struct {
		BaseURL string `yaml:"baseURL"`
		Model   string `yaml:"model"`
	} `yaml:"appraise"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Database struct {
		// mysql or postgres; history is disabled when host is empty
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Redis struct {
		// usage limiting is disabled when addr is empty
		Addr             string `yaml:"addr"`
		Password         string `yaml:"password"`
		DB               int    `yaml:"db"`
		FreeSessionsADay int    `yaml:"freeSessionsADay"`
	} `yaml:"redis"`
}

// Load baca file config.yaml; a missing file falls back to defaults so a
// bare environment-configured run still works.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Pipeline.CallTimeoutSeconds == 0 {
		c.Pipeline.CallTimeoutSeconds = 15
	}
	if c.ImageHost.Backend == "" {
		c.ImageHost.Backend = "imgbb"
	}
	if c.ImageHost.ImgBBEndpoint == "" {
		c.ImageHost.ImgBBEndpoint = "https://api.imgbb.com/1/upload"
	}
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = "https://api.searchapi.com/v1/search"
	}
	if c.Appraise.BaseURL == "" {
		c.Appraise.BaseURL = "https://api.deepseek.com/v1"
	}
	if c.Appraise.Model == "" {
		c.Appraise.Model = "deepseek-chat"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Redis.FreeSessionsADay == 0 {
		c.Redis.FreeSessionsADay = 3
	}
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
