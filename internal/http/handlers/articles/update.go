package articles

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/content-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-platform/internal/http/response"
	"github.com/magabrotheeeer/content-platform/internal/lib/access"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

// UpdateRequest тело запроса на изменение статьи. Отсутствующие поля не меняются.
type UpdateRequest struct {
	ID           *int64  `json:"id" example:"5"`
	Title        *string `json:"title,omitempty" validate:"omitempty,max=500"`
	Content      *string `json:"content,omitempty"`
	PreviewText  *string `json:"preview_text,omitempty"`
	Category     *string `json:"category,omitempty"`
	MainImageURL *string `json:"main_image_url,omitempty"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=draft published" example:"published"`
}

// update godoc
// @Summary      Изменить статью
// @Description  Доступно editor и admin. Меняются только переданные поля, updated_at обновляется всегда
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        request  body  UpdateRequest  true  "Изменения"
// @Security     TokenAuth
// @Success      200  {object}  ArticleResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       / [put]
func (h *Handler) update(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	caller, ok := middlewarectx.CallerFrom(r.Context())
	if !ok {
		response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}

	body, _, err := readBody(w, r)
	if err != nil {
		log.Warn("failed to read request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}

	var req UpdateRequest
	if !h.parse(w, r, log, body, &req) {
		return
	}
	if req.ID == nil || *req.ID == 0 {
		response.Fail(w, r, http.StatusBadRequest, response.MsgArticleIDRequired)
		return
	}
	if err := access.Require(caller.Role, access.ContentManagers...); err != nil {
		log.Info("update rejected", slog.Int64("user_id", caller.UserID), slog.String("role", string(caller.Role)))
		response.Fail(w, r, http.StatusForbidden, response.MsgForbidden)
		return
	}
	if !h.check(w, r, log, &req) {
		return
	}
	if req.Title != nil && *req.Title == "" {
		response.Fail(w, r, http.StatusBadRequest, "field Title must be at least 1")
		return
	}

	patch := models.ArticlePatch{
		Title:        req.Title,
		Content:      req.Content,
		PreviewText:  req.PreviewText,
		Category:     req.Category,
		MainImageURL: req.MainImageURL,
	}
	if req.Status != nil {
		status := models.ArticleStatus(*req.Status)
		patch.Status = &status
	}

	article, err := h.service.Update(r.Context(), *req.ID, patch)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, ArticleResponse{Article: article})
}
