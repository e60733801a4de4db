package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/content-platform/internal/migrations"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере, применяет миграции проекта
// и возвращает готовое хранилище и функцию очистки.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	storage, err := New(ctx, connStr)
	require.NoError(t, err, "failed to connect to test database")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает пользователя с паролем и уникальным email.
func (f *TestDataFactory) CreateUser(t *testing.T, name string, role models.Role) *models.User {
	t.Helper()
	hash := "hashedpassword"
	u, err := f.storage.CreateUser(context.Background(), models.User{
		Email:        uuid.NewString() + "@example.com",
		Name:         name,
		PasswordHash: &hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return u
}

// CreateArticle создает статью автора authorID.
func (f *TestDataFactory) CreateArticle(t *testing.T, authorID int64, title string, status models.ArticleStatus,
	category *string, createdAt time.Time) *models.Article {
	t.Helper()
	a, err := f.storage.CreateArticle(context.Background(), models.Article{
		Title:     title,
		Slug:      title,
		Content:   "content of " + title,
		Category:  category,
		Status:    status,
		AuthorID:  authorID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	require.NoError(t, err)
	return a
}

// SetSubscription проставляет пользователю дату подписки.
func (f *TestDataFactory) SetSubscription(t *testing.T, userID int64, at time.Time) {
	t.Helper()
	_, err := f.storage.DB.Exec(`UPDATE users SET subscription_date = $1 WHERE id = $2`, at, userID)
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
