// Package articles содержит бизнес-логику статей, прогресса чтения и статистики.
package articles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/content-platform/internal/lib/slug"
	"github.com/magabrotheeeer/content-platform/internal/lib/sqlset"
	"github.com/magabrotheeeer/content-platform/internal/models"
	"github.com/magabrotheeeer/content-platform/internal/storage"
)

// ErrArticleNotFound возвращается, когда статьи с указанным ID нет.
var ErrArticleNotFound = errors.New("article not found")

// Repository определяет методы хранилища, которые нужны сервису статей.
type Repository interface {
	CreateArticle(ctx context.Context, a models.Article) (*models.Article, error)
	UpdateArticle(ctx context.Context, id int64, changes []sqlset.Assignment) (*models.Article, error)
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	ListArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	UpsertProgress(ctx context.Context, p models.Progress) (*models.Progress, error)
	ListProgress(ctx context.Context, userID int64) ([]*models.ProgressWithArticle, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

// Draft данные новой статьи. Пустой Status означает черновик.
type Draft struct {
	Title        string
	Content      string
	PreviewText  *string
	Category     *string
	MainImageURL *string
	Status       models.ArticleStatus
}

// Service реализует операции над статьями. Права вызывающего проверяются до вызова сервиса.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create сохраняет статью автора authorID. Slug вычисляется из заголовка,
// published_at проставляется только для опубликованной статьи.
func (s *Service) Create(ctx context.Context, authorID int64, d Draft) (*models.Article, error) {
	const op = "articles.Create"

	status := d.Status
	if status == "" {
		status = models.StatusDraft
	}
	now := s.now()
	a := models.Article{
		Title:        d.Title,
		Slug:         slug.Make(d.Title),
		Content:      d.Content,
		PreviewText:  d.PreviewText,
		Category:     d.Category,
		MainImageURL: d.MainImageURL,
		Status:       status,
		AuthorID:     authorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == models.StatusPublished {
		a.PublishedAt = &now
	}

	created, err := s.repo.CreateArticle(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("article created", slog.Int64("id", created.ID), slog.Int64("author_id", authorID))
	return created, nil
}

// Update применяет patch к статье id. Поля, равные nil, не меняются.
func (s *Service) Update(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, error) {
	const op = "articles.Update"

	updated, err := s.repo.UpdateArticle(ctx, id, BuildChanges(patch, s.now()))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrArticleNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("article updated", slog.Int64("id", id))
	return updated, nil
}

// BuildChanges переводит patch в упорядоченный список присваиваний для UPDATE.
// Заголовок тянет за собой slug, публикация проставляет published_at,
// updated_at добавляется всегда последним.
func BuildChanges(patch models.ArticlePatch, now time.Time) []sqlset.Assignment {
	u := sqlset.New("articles")
	if patch.Title != nil {
		u.Set("title", *patch.Title).Set("slug", slug.Make(*patch.Title))
	}
	if patch.Content != nil {
		u.Set("content", *patch.Content)
	}
	if patch.PreviewText != nil {
		u.Set("preview_text", *patch.PreviewText)
	}
	if patch.Category != nil {
		u.Set("category", *patch.Category)
	}
	if patch.MainImageURL != nil {
		u.Set("main_image_url", *patch.MainImageURL)
	}
	if patch.Status != nil {
		u.Set("status", *patch.Status)
		if *patch.Status == models.StatusPublished {
			u.Set("published_at", now)
		}
	}
	u.Set("updated_at", now)
	return u.Assignments()
}

// Get возвращает статью с именем автора.
func (s *Service) Get(ctx context.Context, id int64) (*models.Article, error) {
	const op = "articles.Get"

	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrArticleNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// List возвращает все статьи, подходящие под filter, от новых к старым.
func (s *Service) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	const op = "articles.List"

	list, err := s.repo.ListArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateProgress сохраняет прогресс userID по статье articleID, полностью заменяя прошлые значения.
func (s *Service) UpdateProgress(ctx context.Context, userID, articleID int64, percent int, completed bool) (*models.Progress, error) {
	const op = "articles.UpdateProgress"

	p, err := s.repo.UpsertProgress(ctx, models.Progress{
		UserID:          userID,
		ArticleID:       articleID,
		ProgressPercent: percent,
		Completed:       completed,
		LastVisitedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrMissingReference) {
			return nil, fmt.Errorf("%s: %w", op, ErrArticleNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListProgress возвращает прогресс пользователя, начиная с последней посещённой статьи.
func (s *Service) ListProgress(ctx context.Context, userID int64) ([]*models.ProgressWithArticle, error) {
	const op = "articles.ListProgress"

	list, err := s.repo.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Stats возвращает агрегированные счётчики платформы.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	const op = "articles.Stats"

	st, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}
