package otel_test

import (
	"context"
	"testing"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/otel"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), config.TelemetryConfig{
		Enabled:     false,
		Endpoint:    "http://localhost:4318",
		ServiceName: "todo-api",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), config.TelemetryConfig{
		Enabled:     true,
		ServiceName: "todo-api",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_CreatesProviderWhenEnabled(t *testing.T) {
	// Non-routable address so nothing is actually exported.
	shutdown, err := otel.Setup(context.Background(), config.TelemetryConfig{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "todo-api-test",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
