package otel_test

import (
	"context"
	"errors"
	"garage/config"
	"garage/infras/otel"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "garage-test"

	o := otel.New(cfg)

	ctx, scope := o.NewScope(context.Background(), "test", "test.span")
	assert.NotEmpty(t, otel.TraceID(ctx))

	scope.SetAttributes(map[string]any{
		"slot":    "10:00",
		"count":   3,
		"big":     int64(7),
		"blocked": []string{"10:00", "10:30"},
		"ok":      true,
	})
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	require.NoError(t, o.Shutdown(context.Background()))
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, otel.TraceID(context.Background()))
}
