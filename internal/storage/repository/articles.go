package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/content-platform/internal/lib/sqlset"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

// articleColumns перечисляет колонки статьи в порядке сканирования scanArticle.
var articleColumns = []string{
	"id", "title", "slug", "content", "preview_text", "category", "main_image_url",
	"status", "author_id", "created_at", "updated_at", "published_at",
}

type scanner interface {
	Scan(dest ...any) error
}

// CreateArticle сохраняет новую статью и возвращает записанную строку.
// Несуществующий автор даёт storage.ErrMissingReference.
func (s *Storage) CreateArticle(ctx context.Context, a models.Article) (*models.Article, error) {
	const op = "storage.CreateArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO articles (title, slug, content, preview_text, category, main_image_url,
			      status, author_id, created_at, updated_at, published_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING ` + strings.Join(articleColumns, ", ")
	var publishedAt sql.NullTime
	if a.PublishedAt != nil {
		publishedAt = sql.NullTime{Time: *a.PublishedAt, Valid: true}
	}
	row := s.DB.QueryRowContext(ctx, query,
		a.Title, a.Slug, a.Content, nullString(a.PreviewText), nullString(a.Category),
		nullString(a.MainImageURL), a.Status, a.AuthorID, a.CreatedAt, a.UpdatedAt, publishedAt)

	created, err := scanArticle(row, false)
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// UpdateArticle применяет changes к статье id одним UPDATE ... RETURNING.
// Если статьи нет, возвращается storage.ErrNotFound.
func (s *Storage) UpdateArticle(ctx context.Context, id int64, changes []sqlset.Assignment) (*models.Article, error) {
	const op = "storage.UpdateArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := sqlset.New("articles").SetAll(changes).Build("id", id, articleColumns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanArticle(s.DB.QueryRowContext(ctx, query, args...), false)
	if err != nil {
		return nil, wrap(op, err)
	}
	return updated, nil
}

// GetArticle возвращает статью вместе с именем автора.
func (s *Storage) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	const op = "storage.GetArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := selectArticlesWithAuthor() + ` WHERE a.id = $1`
	a, err := scanArticle(s.DB.QueryRowContext(ctx, query, id), true)
	if err != nil {
		return nil, wrap(op, err)
	}
	return a, nil
}

// ListArticles возвращает статьи, подходящие под filter, от новых к старым.
// Пустой результат возвращается пустым срезом, а не nil.
func (s *Storage) ListArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	const op = "storage.ListArticles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(selectArticlesWithAuthor())
	b.WriteString(" WHERE 1=1")
	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&b, " AND a.status = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		fmt.Fprintf(&b, " AND a.category = $%d", len(args))
	}
	b.WriteString(" ORDER BY a.created_at DESC, a.id DESC")

	rows, err := s.DB.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows, true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func selectArticlesWithAuthor() string {
	cols := make([]string, 0, len(articleColumns)+1)
	for _, c := range articleColumns {
		cols = append(cols, "a."+c)
	}
	cols = append(cols, "u.name")
	return `SELECT ` + strings.Join(cols, ", ") + ` FROM articles a JOIN users u ON a.author_id = u.id`
}

func scanArticle(row scanner, withAuthor bool) (*models.Article, error) {
	var (
		a                                   models.Article
		previewText, category, mainImageURL sql.NullString
		publishedAt                         sql.NullTime
	)
	dest := []any{
		&a.ID, &a.Title, &a.Slug, &a.Content, &previewText, &category, &mainImageURL,
		&a.Status, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt, &publishedAt,
	}
	if withAuthor {
		dest = append(dest, &a.AuthorName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	a.PreviewText = stringPtr(previewText)
	a.Category = stringPtr(category)
	a.MainImageURL = stringPtr(mainImageURL)
	a.PublishedAt = timePtr(publishedAt)
	return &a, nil
}
