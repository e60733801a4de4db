package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/content-platform/internal/models"
)

func TestStorage_GetStats(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{}, *stats)

	factory := NewTestDataFactory(s)
	editor := factory.CreateUser(t, "Editor", models.RoleEditor)
	subscriber := factory.CreateUser(t, "Subscriber", models.RoleUser)
	factory.CreateUser(t, "Reader", models.RoleUser)
	factory.SetSubscription(t, subscriber.ID, time.Now().UTC())

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateArticle(t, editor.ID, "one", models.StatusDraft, nil, base)
	factory.CreateArticle(t, editor.ID, "two", models.StatusPublished, nil, base)

	stats, err = s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{TotalArticles: 2, TotalUsers: 3, Subscribers: 1}, *stats)
}
