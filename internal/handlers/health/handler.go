package health

import (
	"context"
	"garage/infras/otel"
	"garage/infras/postgres"
	"garage/infras/redis"
	"garage/shared/constant"
	"garage/transport/http/response"
	"net/http"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	checkTimeout = 2 * time.Second
	statusUp     = "up"
	statusDown   = "down"
)

type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type check struct {
	name string
	ping func(ctx context.Context) error
}

type Handler struct {
	checks []check
	otel   otel.Otel
}

func New(db *postgres.Connection, client *goRedis.Client, otel otel.Otel) Handler {
	return Handler{
		checks: []check{
			{name: "postgres", ping: db.Ping},
			{name: "redis", ping: func(ctx context.Context) error { return redis.Ping(ctx, client) }},
		},
		otel: otel,
	}
}

// Check reports whether the dependencies answer. The server state is enforced by the shutdown guard in front of it.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Response]
// @Failure 503 {object} response.Data[Response]
// @Router /health [get]
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HealthCheck")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	res := Response{Status: statusUp, Checks: make(map[string]string, len(handler.checks))}
	code := http.StatusOK

	for _, c := range handler.checks {
		if err := c.ping(ctx); err != nil {
			log.Error().Err(err).Str("check", c.name).Msg("health check failed")
			scope.TraceError(err)

			res.Checks[c.name] = statusDown
			res.Status = statusDown
			code = http.StatusServiceUnavailable

			continue
		}

		res.Checks[c.name] = statusUp
	}

	response.WithJSON(writer, code, res)
}
