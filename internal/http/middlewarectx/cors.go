package middlewarectx

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMaxAge время кеширования ответа на preflight в секундах.
const CORSMaxAge = 86400

// CORS возвращает middleware rs/cors для служебных маршрутов (/healthz, /metrics, /docs)
// и ответов 404/405. Обработчики API отвечают на preflight сами, через response.Preflight,
// поэтому этим middleware не оборачиваются.
func CORS(methods, headers []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         CORSMaxAge,
	}).Handler
}

// MethodNotAllowed отвечает 405 с пустым телом.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
}
