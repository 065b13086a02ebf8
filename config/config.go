package config

import (
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Search   SearchConfig   `yaml:"search"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type StorageConfig struct {
	Dir            string `yaml:"dir"`              // 附件存储目录
	MaxUploadBytes int64  `yaml:"max_upload_bytes"` // 单个附件大小上限
}

type SearchConfig struct {
	GlobalLimit int `yaml:"global_limit"` // 全局搜索每类实体返回条数
	PageSize    int `yaml:"page_size"`    // 列表接口默认分页大小
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/qmsdocs.db",
		},
		Storage: StorageConfig{
			Dir:            "./data/files",
			MaxUploadBytes: 20 << 20,
		},
		Search: SearchConfig{
			GlobalLimit: 10,
			PageSize:    15,
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		config.Server.Mode = mode
	}
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}
	if storageDir := os.Getenv("STORAGE_DIR"); storageDir != "" {
		config.Storage.Dir = storageDir
	}
	if maxUpload := os.Getenv("MAX_UPLOAD_BYTES"); maxUpload != "" {
		if v, err := strconv.ParseInt(maxUpload, 10, 64); err == nil && v > 0 {
			config.Storage.MaxUploadBytes = v
		}
	}

	return config
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
