package articles

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/content-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-platform/internal/http/response"
	"github.com/magabrotheeeer/content-platform/internal/lib/access"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

func (h *Handler) get(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	query := r.URL.Query()

	switch query.Get("action") {
	case "stats":
		h.stats(w, r, log)
		return
	case "progress":
		h.listProgress(w, r, log)
		return
	}

	if rawID := query.Get("id"); rawID != "" {
		h.read(w, r, log, rawID)
		return
	}
	h.list(w, r, log)
}

// read godoc
// @Summary      Получить статью
// @Description  Возвращает статью по ID вместе с именем автора
// @Tags         articles
// @Produce      json
// @Param        id   query     int  true  "ID статьи"
// @Success      200  {object}  ArticleResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       / [get]
func (h *Handler) read(w http.ResponseWriter, r *http.Request, log *slog.Logger, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		log.Info("failed to parse article id", slog.String("id", rawID), sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidArticleID)
		return
	}

	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, ArticleResponse{Article: article})
}

// list godoc
// @Summary      Список статей
// @Description  Возвращает все статьи от новых к старым. Фильтры объединяются через AND
// @Tags         articles
// @Produce      json
// @Param        status    query     string  false  "Статус"  Enums(draft, published)
// @Param        category  query     string  false  "Категория"
// @Success      200  {object}  ListResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       / [get]
func (h *Handler) list(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	query := r.URL.Query()

	var filter models.ArticleFilter
	if status := query.Get("status"); status != "" {
		s := models.ArticleStatus(status)
		filter.Status = &s
	}
	if category := query.Get("category"); category != "" {
		filter.Category = &category
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	log.Debug("articles listed", slog.Int("count", len(list)))
	response.JSON(w, r, http.StatusOK, ListResponse{Articles: list})
}

// stats godoc
// @Summary      Статистика платформы
// @Description  Число статей, пользователей и подписчиков. Только для editor и admin
// @Tags         articles
// @Produce      json
// @Param        action  query  string  true  "stats"
// @Security     TokenAuth
// @Success      200  {object}  StatsResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       / [get]
func (h *Handler) stats(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	caller, ok := middlewarectx.CallerFrom(r.Context())
	if !ok {
		response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}
	if err := access.Require(caller.Role, access.ContentManagers...); err != nil {
		response.Fail(w, r, http.StatusForbidden, response.MsgForbidden)
		return
	}

	st, err := h.service.Stats(r.Context())
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, StatsResponse{Stats: st})
}

// ArticleResponse ответ с одной статьёй.
type ArticleResponse struct {
	Article *models.Article `json:"article"`
}

// ListResponse ответ со списком статей.
type ListResponse struct {
	Articles []*models.Article `json:"articles"`
}

// StatsResponse ответ со статистикой.
type StatsResponse struct {
	Stats *models.Stats `json:"stats"`
}
