package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/content-platform/internal/models"
)

// UpsertProgress записывает прогресс пользователя по статье. Существующая запись
// для пары (user_id, article_id) полностью заменяется. Несуществующая статья
// или пользователь дают storage.ErrMissingReference.
func (s *Storage) UpsertProgress(ctx context.Context, p models.Progress) (*models.Progress, error) {
	const op = "storage.UpsertProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_progress (user_id, article_id, progress_percent, completed, last_visited_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_id, article_id)
			  DO UPDATE SET progress_percent = EXCLUDED.progress_percent,
			      completed = EXCLUDED.completed,
			      last_visited_at = EXCLUDED.last_visited_at
			  RETURNING id, user_id, article_id, progress_percent, completed, last_visited_at`
	var saved models.Progress
	if err := s.DB.QueryRowContext(ctx, query,
		p.UserID, p.ArticleID, p.ProgressPercent, p.Completed, p.LastVisitedAt).Scan(
		&saved.ID, &saved.UserID, &saved.ArticleID, &saved.ProgressPercent,
		&saved.Completed, &saved.LastVisitedAt); err != nil {
		return nil, wrap(op, err)
	}
	return &saved, nil
}

// ListProgress возвращает весь прогресс пользователя с заголовком и категорией статьи,
// начиная с последней посещённой.
func (s *Storage) ListProgress(ctx context.Context, userID int64) ([]*models.ProgressWithArticle, error) {
	const op = "storage.ListProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT up.id, up.user_id, up.article_id, up.progress_percent, up.completed,
			      up.last_visited_at, a.title, a.category
			  FROM user_progress up
			  JOIN articles a ON up.article_id = a.id
			  WHERE up.user_id = $1
			  ORDER BY up.last_visited_at DESC, up.id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.ProgressWithArticle, 0)
	for rows.Next() {
		var (
			p        models.ProgressWithArticle
			category sql.NullString
		)
		if err = rows.Scan(&p.ID, &p.UserID, &p.ArticleID, &p.ProgressPercent, &p.Completed,
			&p.LastVisitedAt, &p.Title, &category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Category = stringPtr(category)
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
