package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-документации сервиса аутентификации.
	_ "github.com/magabrotheeeer/content-platform/docs/auth"
	authhandler "github.com/magabrotheeeer/content-platform/internal/http/handlers/auth"
	"github.com/magabrotheeeer/content-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/content-platform/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты сервиса аутентификации.
func RegisterRoutes(r chi.Router, logger *slog.Logger, reg *prometheus.Registry, service authhandler.Service, db health.Pinger) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middlewarectx.NewMetrics(reg, "auth")

	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
	)

	// Служебные маршруты и ответы 404/405 получают CORS от rs/cors.
	edge := middlewarectx.CORS([]string{http.MethodGet, http.MethodOptions}, []string{"Content-Type"})
	r.NotFound(edge(http.NotFoundHandler()).ServeHTTP)
	r.MethodNotAllowed(edge(http.HandlerFunc(middlewarectx.MethodNotAllowed)).ServeHTTP)
	r.With(edge).Get("/healthz", health.New(logger, db).ServeHTTP)
	r.With(edge).Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.With(edge).Get("/docs/*", httpSwagger.WrapHandler)

	h := authhandler.New(logger, service)
	r.Handle("/", h)
	r.Handle("/auth", h)
}
