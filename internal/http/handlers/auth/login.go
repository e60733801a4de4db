package auth

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/content-platform/internal/http/response"
)

// LoginRequest учётные данные для входа по паролю.
type LoginRequest struct {
	Action   string `json:"action" example:"login"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// login godoc
// @Summary      Вход по паролю
// @Description  Проверяет email и пароль и возвращает токен. Все ошибки учётных данных неразличимы
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Учетные данные пользователя"
// @Success      200      {object}  AuthResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      401      {object}  response.ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  response.ErrorResponse
// @Router       / [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request, log *slog.Logger, body []byte) {
	var req LoginRequest
	if !h.decode(w, r, log, body, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, AuthResponse{User: newUserView(user), Token: token})
}
