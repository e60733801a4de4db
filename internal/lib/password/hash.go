// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// CompareHash сверяет сохранённый хеш с введённым паролем. Для учётных записей без
// пароля (вход только через Google) сравнение всегда завершается ErrMismatch.
//
// bcrypt принимает не больше 72 байт. Пароль длиннее этого предела сначала
// сводится к base64(SHA-256(пароль)), 44 байта, и уже он передаётся в bcrypt.
// Пароли до 72 байт хешируются как есть.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, когда пароль не подходит к хешу или хеша нет вовсе.
var ErrMismatch = errors.New("password does not match")

// MaxBcryptBytes предел длины входа bcrypt.
const MaxBcryptBytes = 72

// prepare возвращает байты, которые передаются в bcrypt.
func prepare(password string) []byte {
	if len(password) <= MaxBcryptBytes {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш с солью.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword(prepare(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу. Несовпадение, пустой или
// повреждённый хеш дают ErrMismatch.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if originalHash == "" {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), prepare(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrMismatch, err)
	}
	return nil
}
