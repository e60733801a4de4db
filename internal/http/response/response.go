// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов HTTP-обработчиков: тело ошибки {"error": "..."}, тексты
// сообщений валидации и заголовки CORS, которые несёт каждый ответ.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// Тексты ошибок, которые видит клиент.
const (
	MsgUnauthorized        = "Unauthorized"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgInvalidToken        = "Invalid token"
	MsgUserNotFound        = "User not found"
	MsgForbidden           = "Insufficient permissions"
	MsgArticleNotFound     = "Article not found"
	MsgArticleIDRequired   = "Article ID required"
	MsgEmailTaken          = "Email already registered"
	MsgAccountExists       = "Account already exists"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgUnknownAction       = "Unknown action"
	MsgInvalidBody         = "Invalid request body"
	MsgInternal            = "Internal server error"
	MsgInvalidArticleID    = "Invalid article ID"
	MsgServiceNotAvailable = "Service unavailable"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"Article not found"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человекочитаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}

// JSON пишет v со статусом status. Заголовок Access-Control-Allow-Origin
// выставляется для любого ответа, в том числе для ошибок.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Fail пишет ErrorResponse с сообщением msg.
func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, Error(msg))
}

// Preflight отвечает на OPTIONS-запрос пустым телом со статусом 200.
func Preflight(w http.ResponseWriter, methods, headers string) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", methods)
	h.Set("Access-Control-Allow-Headers", headers)
	h.Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusOK)
}
