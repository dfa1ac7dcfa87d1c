package config

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvInfo 集合服務設定 from env-file
type EnvInfo struct {
	// image name
	Gateway string

	// service port
	GatewayPort string

	// service yaml path
	GatewayYAMLPath string

	// service log path
	GatewayLogPath string
}

// EnvConfig 集合服務設定
var (
	EnvConfig = initEnv()
	envConfig EnvInfo
	once      sync.Once
	env       string
)

func initEnv() EnvInfo {
	once.Do(func() {
		env = os.Getenv("GATEWAY_ENV")

		// production 讀 .env，其它環境讀 .env.development
		envFile := ".env"
		if !IsProduction() {
			envFile = ".env.development"
		}

		path, err := GetPath(envFile, 5)
		if err != nil {
			log.Printf("Warning: Could not get %s path: %v", envFile, err)
		}

		if err := godotenv.Load(path); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFile, err)
		}

		envConfig = EnvInfo{
			Gateway:         os.Getenv("GATEWAY"),
			GatewayPort:     os.Getenv("GATEWAY_PORT"),
			GatewayYAMLPath: os.Getenv("GATEWAY_YAML"),
			GatewayLogPath:  os.Getenv("GATEWAY_LOG"),
		}
	})

	return envConfig
}

// IsProduction check run env
func IsProduction() bool {
	return env == "production"
}

// IsDevelopment check run env
func IsDevelopment() bool {
	return !IsProduction()
}

// LoadConfig 加載配置
func LoadConfig[T any](serviceName string, configPath string) T {
	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// 自動讀取環境變數
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error loading config file: %v", err)
	}

	rawConfig, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		log.Fatalf("Error reading raw config file: %v", err)
	}

	// 替換 ${} 占位符為環境變數的值
	expandedConfig := os.ExpandEnv(string(rawConfig))

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expandedConfig))); err != nil {
		log.Fatalf("Error reading expanded config: %v", err)
	}

	var cfg T
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Error unmarshaling config: %v", err)
	}
	return cfg
}

// GetPath use fileName loop maxCount find file path
func GetPath(fileName string, maxCount int) (string, error) {
	path := "./" + fileName

	for i := 0; i < maxCount; i++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = "../" + path
	}
	return "", errors.New(fileName + " can't find path")
}
