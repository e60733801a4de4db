// Package auth реализует HTTP-обработчик сервиса аутентификации.
//
// Принимается только POST (и OPTIONS для preflight). Операция выбирается
// по полю action в теле: register, login, google_auth, verify_token.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-platform/internal/http/response"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
	authservice "github.com/magabrotheeeer/content-platform/internal/services/auth"
)

const (
	// AllowedMethods значение Access-Control-Allow-Methods в ответе на preflight.
	AllowedMethods = "GET, POST, OPTIONS"
	// AllowedHeaders значение Access-Control-Allow-Headers в ответе на preflight.
	AllowedHeaders = "Content-Type, Authorization"

	maxBodyBytes = 1 << 20
)

// Service описывает бизнес-логику аутентификации.
type Service interface {
	Register(ctx context.Context, email, name, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GoogleAuth(ctx context.Context, identity models.GoogleIdentity, idToken string) (*models.User, string, bool, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// Handler обрабатывает все запросы сервиса аутентификации.
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

// UserView данные пользователя, которые видит клиент.
type UserView struct {
	ID               int64       `json:"id" example:"1"`
	Email            string      `json:"email" example:"user@example.com"`
	Name             string      `json:"name" example:"Ivan"`
	Role             models.Role `json:"role" example:"user"`
	SubscriptionDate *time.Time  `json:"subscription_date"`
}

// AuthResponse ответ с пользователем и выданным токеном.
type AuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token,omitempty"`
}

func newUserView(u *models.User) UserView {
	return UserView{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		SubscriptionDate: u.SubscriptionDate,
	}
}

// ServeHTTP выбирает операцию по полю action.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	switch r.Method {
	case http.MethodOptions:
		response.Preflight(w, AllowedMethods, AllowedHeaders)
		return
	case http.MethodPost:
	default:
		response.Fail(w, r, http.StatusMethodNotAllowed, response.MsgMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Warn("failed to read request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}

	switch envelope.Action {
	case "register":
		h.register(w, r, log, body)
	case "login":
		h.login(w, r, log, body)
	case "google_auth":
		h.googleAuth(w, r, log, body)
	case "verify_token":
		h.verifyToken(w, r, log, body)
	default:
		response.Fail(w, r, http.StatusBadRequest, response.MsgUnknownAction)
	}
}

// decode разбирает body в req и проверяет его. При ошибке ответ уже записан.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, body []byte, req any) bool {
	if err := render.DecodeJSON(bytes.NewReader(body), req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
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
	return true
}

// fail переводит ошибку сервиса в ответ. Неизвестные ошибки логируются и дают 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, authservice.ErrEmailTaken):
		response.Fail(w, r, http.StatusBadRequest, response.MsgEmailTaken)
	case errors.Is(err, authservice.ErrAccountExists):
		response.Fail(w, r, http.StatusBadRequest, response.MsgAccountExists)
	case errors.Is(err, authservice.ErrInvalidCredentials):
		response.Fail(w, r, http.StatusUnauthorized, response.MsgInvalidCredentials)
	case errors.Is(err, authservice.ErrInvalidToken):
		response.Fail(w, r, http.StatusUnauthorized, response.MsgInvalidToken)
	case errors.Is(err, authservice.ErrUserNotFound):
		response.Fail(w, r, http.StatusUnauthorized, response.MsgUserNotFound)
	default:
		log.Error("request failed", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
	}
}
