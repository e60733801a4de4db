// Package models содержит доменные структуры платформы: пользователей,
// статьи, прогресс чтения и агрегированную статистику.
package models

import "time"

// Role роль пользователя, определяющая его права.
type Role string

const (
	// RoleUser читатель, роль по умолчанию.
	RoleUser Role = "user"
	// RoleEditor может создавать и редактировать статьи.
	RoleEditor Role = "editor"
	// RoleAdmin имеет все права редактора.
	RoleAdmin Role = "admin"
)

// Valid сообщает, что роль входит в известный набор.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// User представляет зарегистрированного пользователя системы.
//
// У пользователя всегда есть хотя бы один способ входа: пароль или GoogleID.
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	PasswordHash     *string    `json:"-"` // nil для учётных записей Google
	GoogleID         *string    `json:"-"`
	Role             Role       `json:"role"`
	SubscriptionDate *time.Time `json:"subscription_date"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Caller личность автора запроса, восстановленная из токена.
type Caller struct {
	UserID int64
	Email  string
	Role   Role
}

// GoogleIdentity данные, полученные от Google при входе.
type GoogleIdentity struct {
	GoogleID string
	Email    string
	Name     string
}
