package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/content-platform/internal/lib/sqlset"
	"github.com/magabrotheeeer/content-platform/internal/models"
	"github.com/magabrotheeeer/content-platform/internal/storage"
)

func TestStorage_CreateAndGetArticle(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	factory := NewTestDataFactory(s)
	author := factory.CreateUser(t, "Editor", models.RoleEditor)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	created, err := s.CreateArticle(ctx, models.Article{
		Title:       "Hello World",
		Slug:        "hello-world",
		Content:     "body",
		PreviewText: ptr("preview"),
		Status:      models.StatusPublished,
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: &now,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "hello-world", created.Slug)
	require.NotNil(t, created.PreviewText)
	assert.Equal(t, "preview", *created.PreviewText)
	assert.Nil(t, created.Category)
	require.NotNil(t, created.PublishedAt)
	assert.True(t, now.Equal(*created.PublishedAt))
	assert.Empty(t, created.AuthorName)

	got, err := s.GetArticle(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Editor", got.AuthorName)
	assert.Equal(t, created.Title, got.Title)

	_, err = s.GetArticle(ctx, created.ID+100)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.CreateArticle(ctx, models.Article{
		Title: "Orphan", Slug: "orphan", Content: "x", Status: models.StatusDraft,
		AuthorID: author.ID + 100, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, storage.ErrMissingReference)
}

func TestStorage_UpdateArticle(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	factory := NewTestDataFactory(s)
	author := factory.CreateUser(t, "Editor", models.RoleEditor)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	article := factory.CreateArticle(t, author.ID, "draft", models.StatusDraft, ptr("go"), created)

	later := created.Add(time.Hour)
	updated, err := s.UpdateArticle(ctx, article.ID, []sqlset.Assignment{
		{Column: "title", Value: "New Title"},
		{Column: "slug", Value: "new-title"},
		{Column: "status", Value: models.StatusPublished},
		{Column: "published_at", Value: later},
		{Column: "updated_at", Value: later},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, models.StatusPublished, updated.Status)
	assert.Equal(t, "content of draft", updated.Content, "untouched columns keep their values")
	require.NotNil(t, updated.Category)
	assert.Equal(t, "go", *updated.Category)
	assert.True(t, later.Equal(updated.UpdatedAt))
	assert.True(t, created.Equal(updated.CreatedAt))
	require.NotNil(t, updated.PublishedAt)

	_, err = s.UpdateArticle(ctx, article.ID+100, []sqlset.Assignment{{Column: "updated_at", Value: later}})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateArticle(ctx, article.ID, nil)
	assert.ErrorIs(t, err, sqlset.ErrEmpty)
}

func TestStorage_ListArticles(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	factory := NewTestDataFactory(s)
	author := factory.CreateUser(t, "Editor", models.RoleEditor)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := factory.CreateArticle(t, author.ID, "first", models.StatusPublished, ptr("go"), base)
	second := factory.CreateArticle(t, author.ID, "second", models.StatusDraft, ptr("go"), base.Add(time.Hour))
	third := factory.CreateArticle(t, author.ID, "third", models.StatusPublished, ptr("rust"), base.Add(2*time.Hour))
	fourth := factory.CreateArticle(t, author.ID, "fourth", models.StatusPublished, nil, base.Add(3*time.Hour))

	published := models.StatusPublished
	tests := []struct {
		name    string
		filter  models.ArticleFilter
		wantIDs []int64
	}{
		{
			name:    "no filter, newest first",
			wantIDs: []int64{fourth.ID, third.ID, second.ID, first.ID},
		},
		{
			name:    "status only",
			filter:  models.ArticleFilter{Status: &published},
			wantIDs: []int64{fourth.ID, third.ID, first.ID},
		},
		{
			name:    "category only",
			filter:  models.ArticleFilter{Category: ptr("go")},
			wantIDs: []int64{second.ID, first.ID},
		},
		{
			name:    "status and category",
			filter:  models.ArticleFilter{Status: &published, Category: ptr("go")},
			wantIDs: []int64{first.ID},
		},
		{
			name:    "no matches",
			filter:  models.ArticleFilter{Category: ptr("python")},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListArticles(ctx, tt.filter)
			require.NoError(t, err)
			require.NotNil(t, got)

			ids := make([]int64, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
				assert.Equal(t, "Editor", a.AuthorName)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
