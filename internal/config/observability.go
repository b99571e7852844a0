package config

import (
	"github.com/furluv/furluv/internal/observability"

	"github.com/knadh/koanf/v2"
)

// LoadObservabilityConfig reports ok=false when no OTLP endpoint is set, in
// which case tracing stays disabled.
func LoadObservabilityConfig(config *koanf.Koanf) (observability.Config, bool) {
	observabilityConfig := observability.Config{
		OtelEndpoint: config.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelHeaders:  config.String("OTEL_EXPORTER_OTLP_HEADERS"),
		ServiceName:  config.String("OTEL_SERVICE_NAME"),
		Environment:  config.String("ENVIRONMENT"),
	}

	if observabilityConfig.ServiceName == "" {
		observabilityConfig.ServiceName = "furluv"
	}

	return observabilityConfig, observabilityConfig.OtelEndpoint != ""
}
