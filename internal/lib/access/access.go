// Package access содержит единую проверку прав по ролям.
package access

import (
	"errors"
	"slices"

	"github.com/magabrotheeeer/content-platform/internal/models"
)

// ErrForbidden возвращается, когда роль вызывающего не входит в допустимый набор.
var ErrForbidden = errors.New("insufficient permissions")

// ContentManagers роли, которым разрешено управлять статьями и смотреть статистику.
var ContentManagers = []models.Role{models.RoleEditor, models.RoleAdmin}

// Require проверяет, что role входит в allowed.
func Require(role models.Role, allowed ...models.Role) error {
	if role.Valid() && slices.Contains(allowed, role) {
		return nil
	}
	return ErrForbidden
}
