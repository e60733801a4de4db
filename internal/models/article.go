package models

import "time"

// ArticleStatus статус публикации статьи.
type ArticleStatus string

const (
	// StatusDraft черновик, статус по умолчанию.
	StatusDraft ArticleStatus = "draft"
	// StatusPublished опубликованная статья.
	StatusPublished ArticleStatus = "published"
)

// Article статья в том виде, в котором она хранится и отдаётся клиенту.
type Article struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Content      string        `json:"content"`
	PreviewText  *string       `json:"preview_text"`
	Category     *string       `json:"category"`
	MainImageURL *string       `json:"main_image_url"`
	Status       ArticleStatus `json:"status"`
	AuthorID     int64         `json:"author_id"`
	AuthorName   string        `json:"author_name,omitempty"` // только в выборках с JOIN users
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	PublishedAt  *time.Time    `json:"published_at"`
}

// ArticlePatch набор изменений статьи. nil означает «поле не передано».
type ArticlePatch struct {
	Title        *string
	Content      *string
	PreviewText  *string
	Category     *string
	MainImageURL *string
	Status       *ArticleStatus
}

// ArticleFilter необязательные фильтры списка статей, объединяемые через AND.
type ArticleFilter struct {
	Status   *ArticleStatus
	Category *string
}
