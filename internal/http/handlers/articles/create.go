package articles

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/content-platform/internal/http/response"
	"github.com/magabrotheeeer/content-platform/internal/lib/access"
	"github.com/magabrotheeeer/content-platform/internal/models"
	articleservice "github.com/magabrotheeeer/content-platform/internal/services/articles"
)

// CreateRequest тело запроса на создание статьи.
type CreateRequest struct {
	Action       string  `json:"action" example:"create"`
	Title        string  `json:"title" validate:"required,max=500"`
	Content      string  `json:"content" validate:"required"`
	PreviewText  *string `json:"preview_text,omitempty"`
	Category     *string `json:"category,omitempty"`
	MainImageURL *string `json:"main_image_url,omitempty"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=draft published" example:"draft"`
}

// create godoc
// @Summary      Создать статью
// @Description  Доступно editor и admin. Slug вычисляется из заголовка
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        request  body  CreateRequest  true  "Новая статья"
// @Security     TokenAuth
// @Success      201  {object}  ArticleResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       / [post]
func (h *Handler) create(w http.ResponseWriter, r *http.Request, log *slog.Logger, caller models.Caller, body []byte) {
	if err := access.Require(caller.Role, access.ContentManagers...); err != nil {
		log.Info("create rejected", slog.Int64("user_id", caller.UserID), slog.String("role", string(caller.Role)))
		response.Fail(w, r, http.StatusForbidden, response.MsgForbidden)
		return
	}

	var req CreateRequest
	if !h.decode(w, r, log, body, &req) {
		return
	}

	article, err := h.service.Create(r.Context(), caller.UserID, articleservice.Draft{
		Title:        req.Title,
		Content:      req.Content,
		PreviewText:  req.PreviewText,
		Category:     req.Category,
		MainImageURL: req.MainImageURL,
		Status:       models.ArticleStatus(req.Status),
	})
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, ArticleResponse{Article: article})
}
