package auth

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/content-platform/internal/http/response"
)

// RegisterRequest входные данные для регистрации. Длина пароля сверху не ограничена.
type RegisterRequest struct {
	Action   string `json:"action" example:"register"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Name     string `json:"name" validate:"required,min=1,max=255" example:"Ivan"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
}

// register godoc
// @Summary      Регистрация
// @Description  Создаёт пользователя с ролью user и возвращает токен
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Данные пользователя"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  response.ErrorResponse  "Ошибка валидации или email занят"
// @Failure      500      {object}  response.ErrorResponse
// @Router       / [post]
func (h *Handler) register(w http.ResponseWriter, r *http.Request, log *slog.Logger, body []byte) {
	var req RegisterRequest
	if !h.decode(w, r, log, body, &req) {
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	log.Info("user registered", slog.Int64("user_id", user.ID))
	response.JSON(w, r, http.StatusCreated, AuthResponse{User: newUserView(user), Token: token})
}
