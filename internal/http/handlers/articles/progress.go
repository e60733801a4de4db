package articles

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/content-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-platform/internal/http/response"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

// ProgressRequest тело запроса на сохранение прогресса чтения.
type ProgressRequest struct {
	Action          string `json:"action" example:"update_progress"`
	ArticleID       *int64 `json:"article_id" validate:"required" example:"5"`
	ProgressPercent *int   `json:"progress_percent" validate:"required,min=0,max=100" example:"40"`
	Completed       bool   `json:"completed"`
}

// ProgressResponse ответ с сохранённым прогрессом.
type ProgressResponse struct {
	Progress *models.Progress `json:"progress"`
}

// ProgressListResponse ответ с прогрессом пользователя по всем статьям.
type ProgressListResponse struct {
	Progress []*models.ProgressWithArticle `json:"progress"`
}

// updateProgress godoc
// @Summary      Сохранить прогресс чтения
// @Description  Создаёт или полностью заменяет прогресс вызывающего по статье
// @Tags         progress
// @Accept       json
// @Produce      json
// @Param        request  body  ProgressRequest  true  "Прогресс"
// @Security     TokenAuth
// @Success      200  {object}  ProgressResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       / [post]
func (h *Handler) updateProgress(w http.ResponseWriter, r *http.Request, log *slog.Logger, caller models.Caller, body []byte) {
	var req ProgressRequest
	if !h.decode(w, r, log, body, &req) {
		return
	}

	p, err := h.service.UpdateProgress(r.Context(), caller.UserID, *req.ArticleID, *req.ProgressPercent, req.Completed)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, ProgressResponse{Progress: p})
}

// listProgress godoc
// @Summary      Мой прогресс
// @Description  Прогресс вызывающего с заголовком и категорией статьи, последние посещённые первыми
// @Tags         progress
// @Produce      json
// @Param        action  query  string  true  "progress"
// @Security     TokenAuth
// @Success      200  {object}  ProgressListResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       / [get]
func (h *Handler) listProgress(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	caller, ok := middlewarectx.CallerFrom(r.Context())
	if !ok {
		response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}

	list, err := h.service.ListProgress(r.Context(), caller.UserID)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, ProgressListResponse{Progress: list})
}
