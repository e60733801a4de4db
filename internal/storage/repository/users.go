package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/content-platform/internal/models"
)

const userColumns = `id, email, name, password_hash, google_id, role, subscription_date, created_at`

// CreateUser сохраняет нового пользователя и возвращает строку в том виде, в котором её записала база.
// Занятые email или google_id дают storage.ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, name, password_hash, google_id, role, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, nullString(user.PasswordHash), nullString(user.GoogleID),
		user.Role, user.CreatedAt)

	u, err := scanUser(row)
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email. Сравнение регистрозависимое.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// GetUserByGoogleID возвращает пользователя, связанного с учётной записью Google.
func (s *Storage) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	const op = "storage.GetUserByGoogleID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, googleID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u                      models.User
		passwordHash, googleID sql.NullString
		subscriptionDate       sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &passwordHash, &googleID,
		&u.Role, &subscriptionDate, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.PasswordHash = stringPtr(passwordHash)
	u.GoogleID = stringPtr(googleID)
	u.SubscriptionDate = timePtr(subscriptionDate)
	return &u, nil
}
