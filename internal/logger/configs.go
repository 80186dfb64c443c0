package logger

import "os"

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the zap logger setup.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else maps to info.
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// NewConfig reads the logger configuration from environment variables.
func NewConfig() Config {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "melodia"
	}

	return Config{
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: service,
	}
}
