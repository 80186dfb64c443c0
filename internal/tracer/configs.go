package tracer

import (
	"os"
)

// Config controls OpenTelemetry tracing.
type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string

	// AppEnv is the deployment environment attribute (e.g. "production").
	AppEnv string

	// EnableExport turns on the OTLP HTTP exporter. Exporter endpoint and
	// headers follow the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool
}

// NewConfig reads from environment variables.
func NewConfig() Config {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "melodia"
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	return Config{
		ServiceName:  serviceName,
		AppEnv:       appEnv,
		EnableExport: os.Getenv("TRACER_ENABLE_EXPORT") == "true",
	}
}
