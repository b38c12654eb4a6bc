package middleware

import (
	"context"
	"crypto/subtle"
	"garage/config"
	"garage/infras/otel"
	"garage/shared/constant"
	"garage/shared/failure"
	"garage/transport/http/response"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Auth guards the back-office routes.
type Auth interface {
	APIKey(http.Handler) http.Handler
}

type authImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAuthMiddleware(otel otel.Otel, cfg *config.Config) Auth {
	if cfg.App.APIKey == "" {
		log.Warn().Msg("APP_API_KEY is not set, admin routes will reject every request")
	}

	return &authImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// APIKey requires the X-API-Key header to match APP_API_KEY and marks the request as an admin action.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			err := failure.Unauthorized("Missing API key")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.ForbiddenError

			scope.SetAttribute("http.source", "unknown")
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.SetAttribute("http.source", "admin")
		scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyActor, constant.ActorAdmin)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
