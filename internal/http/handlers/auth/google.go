package auth

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/content-platform/internal/http/response"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

// GoogleAuthRequest данные учётной записи Google. IDToken необязателен.
type GoogleAuthRequest struct {
	Action   string `json:"action" example:"google_auth"`
	GoogleID string `json:"google_id" validate:"required" example:"109876543210"`
	Email    string `json:"email" validate:"required,email" example:"user@gmail.com"`
	Name     string `json:"name" validate:"required" example:"Ivan"`
	IDToken  string `json:"id_token,omitempty"`
}

// googleAuth godoc
// @Summary      Вход через Google
// @Description  Входит по google_id, при первом входе создаёт учётную запись без пароля
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      GoogleAuthRequest  true  "Данные Google"
// @Success      200      {object}  AuthResponse  "Существующий пользователь"
// @Success      201      {object}  AuthResponse  "Создан новый пользователь"
// @Failure      400      {object}  response.ErrorResponse
// @Failure      401      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       / [post]
func (h *Handler) googleAuth(w http.ResponseWriter, r *http.Request, log *slog.Logger, body []byte) {
	var req GoogleAuthRequest
	if !h.decode(w, r, log, body, &req) {
		return
	}

	user, token, created, err := h.service.GoogleAuth(r.Context(), models.GoogleIdentity{
		GoogleID: req.GoogleID,
		Email:    req.Email,
		Name:     req.Name,
	}, req.IDToken)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, r, status, AuthResponse{User: newUserView(user), Token: token})
}
