package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/content-platform/internal/models"
)

// GetStats возвращает число статей, пользователей и пользователей с оформленной подпиской.
func (s *Storage) GetStats(ctx context.Context) (*models.Stats, error) {
	const op = "storage.GetStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM articles),
			      (SELECT COUNT(*) FROM users),
			      (SELECT COUNT(*) FROM users WHERE subscription_date IS NOT NULL)`
	var st models.Stats
	if err := s.DB.QueryRowContext(ctx, query).Scan(&st.TotalArticles, &st.TotalUsers, &st.Subscribers); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}
