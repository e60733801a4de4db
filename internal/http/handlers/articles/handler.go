// Package articles реализует HTTP-обработчик сервиса статей.
//
// Один обработчик принимает все методы и выбирает операцию по методу,
// параметру action в query (GET) или полю action в теле (POST).
// Личность вызывающего берётся из контекста, куда её кладёт middlewarectx.Identity.
package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-platform/internal/http/response"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
	articleservice "github.com/magabrotheeeer/content-platform/internal/services/articles"
)

const (
	// AllowedMethods значение Access-Control-Allow-Methods в ответе на preflight.
	AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	// AllowedHeaders значение Access-Control-Allow-Headers в ответе на preflight.
	AllowedHeaders = "Content-Type, X-Auth-Token"

	maxBodyBytes = 1 << 20
)

// Service описывает бизнес-логику, которую вызывает обработчик.
type Service interface {
	Create(ctx context.Context, authorID int64, d articleservice.Draft) (*models.Article, error)
	Update(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	UpdateProgress(ctx context.Context, userID, articleID int64, percent int, completed bool) (*models.Progress, error)
	ListProgress(ctx context.Context, userID int64) ([]*models.ProgressWithArticle, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// Handler обрабатывает все запросы сервиса статей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP выбирает операцию по HTTP-методу.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.articles"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	switch r.Method {
	case http.MethodOptions:
		response.Preflight(w, AllowedMethods, AllowedHeaders)
	case http.MethodGet:
		h.get(w, r, log)
	case http.MethodPost:
		h.post(w, r, log)
	case http.MethodPut:
		h.update(w, r, log)
	default:
		response.Fail(w, r, http.StatusMethodNotAllowed, response.MsgMethodNotAllowed)
	}
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	caller, ok := middlewarectx.CallerFrom(r.Context())
	if !ok {
		response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}

	body, action, err := readBody(w, r)
	if err != nil {
		log.Warn("failed to read request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}

	switch action {
	case "create":
		h.create(w, r, log, caller, body)
	case "update_progress":
		h.updateProgress(w, r, log, caller, body)
	default:
		response.Fail(w, r, http.StatusBadRequest, response.MsgUnknownAction)
	}
}

// decode разбирает body в req и проверяет его. При ошибке ответ уже записан.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, body []byte, req any) bool {
	return h.parse(w, r, log, body, req) && h.check(w, r, log, req)
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request, log *slog.Logger, body []byte, req any) bool {
	if err := render.DecodeJSON(bytes.NewReader(body), req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return false
	}
	return true
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request, log *slog.Logger, req any) bool {
	err := h.validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		log.Error("validation failed", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return false
	}
	log.Info("validation failed", sl.Err(err))
	response.JSON(w, r, http.StatusBadRequest, response.ValidationError(verrs))
	return false
}

// fail переводит ошибку сервиса в ответ. Неизвестные ошибки логируются и дают 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, articleservice.ErrArticleNotFound) {
		response.Fail(w, r, http.StatusNotFound, response.MsgArticleNotFound)
		return
	}
	log.Error("request failed", sl.Err(err))
	response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
}

// readBody читает тело целиком и достаёт из него поле action.
// Пустое тело считается пустым объектом.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, "", err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", fmt.Errorf("decode action: %w", err)
	}
	return body, envelope.Action, nil
}
