package config

import "time"

// Gateway definition gateway YAML structure
type Gateway struct {
	Port string `mapstructure:"port"`

	AuthService AuthServiceConfig `mapstructure:"auth"`
	MinIO       MinIOConfig       `mapstructure:"minio"`
	RabbitMQ    RabbitMQConfig    `mapstructure:"rabbitmq"`
	Converter   ConverterConfig   `mapstructure:"converter"`
}

// AuthServiceConfig definition remote auth service setting
type AuthServiceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	BucketName string `mapstructure:"bucket_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`

	RetryCount    int           `mapstructure:"retry_count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// RabbitMQConfig definition rabbitmq setting
type RabbitMQConfig struct {
	IP         string `mapstructure:"ip"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
	Queue      string `mapstructure:"queue"`

	RetryCount    int           `mapstructure:"retry_count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// ConverterConfig definition converter policy setting
type ConverterConfig struct {
	// 下載是否要求擁有者本人（或授權角色），預設關閉
	DownloadRequiresOwner bool `mapstructure:"download_requires_owner"`
}
