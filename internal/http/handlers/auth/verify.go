package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/content-platform/internal/http/response"
)

// VerifyTokenRequest токен для проверки. Если поле пустое, используется
// заголовок Authorization: Bearer <token>.
type VerifyTokenRequest struct {
	Action string `json:"action" example:"verify_token"`
	Token  string `json:"token"`
}

// verifyToken godoc
// @Summary      Проверка токена
// @Description  Проверяет токен и возвращает актуальные данные пользователя из базы
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyTokenRequest  true  "Токен"
// @Success      200      {object}  AuthResponse
// @Failure      401      {object}  response.ErrorResponse  "Invalid token или User not found"
// @Failure      500      {object}  response.ErrorResponse
// @Router       / [post]
func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request, log *slog.Logger, body []byte) {
	var req VerifyTokenRequest
	if !h.decode(w, r, log, body, &req) {
		return
	}

	token := req.Token
	if token == "" {
		token = bearerToken(r)
	}

	user, err := h.service.VerifyToken(r.Context(), token)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, AuthResponse{User: newUserView(user)})
}

// bearerToken достаёт токен из заголовка Authorization. Заголовок без схемы Bearer игнорируется.
func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
