package models

import "time"

// Progress прогресс чтения статьи пользователем. Одна запись на пару (UserID, ArticleID).
type Progress struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ArticleID       int64     `json:"article_id"`
	ProgressPercent int       `json:"progress_percent"`
	Completed       bool      `json:"completed"`
	LastVisitedAt   time.Time `json:"last_visited_at"`
}

// ProgressWithArticle дополняет прогресс заголовком и категорией статьи.
type ProgressWithArticle struct {
	Progress
	Title    string  `json:"title"`
	Category *string `json:"category"`
}

// Stats агрегированные счётчики для панели редактора.
type Stats struct {
	TotalArticles int64 `json:"total_articles"`
	TotalUsers    int64 `json:"total_users"`
	Subscribers   int64 `json:"subscribers"`
}
