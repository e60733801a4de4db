// Package storage определяет ошибки слоя хранения, общие для всех репозиториев,
// и переводит коды ошибок PostgreSQL в эти ошибки.
package storage

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound запрошенная строка отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrConflict нарушено ограничение уникальности.
	ErrConflict = errors.New("unique constraint violation")
	// ErrMissingReference внешний ключ указывает на несуществующую строку.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// Classify заменяет известные ошибки драйвера на ошибки пакета storage.
// Остальные ошибки возвращаются без изменений.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrConflict
		case pgerrcode.ForeignKeyViolation:
			return ErrMissingReference
		}
	}
	return err
}
