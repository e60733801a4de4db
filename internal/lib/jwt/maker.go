// Package jwt реализует генерацию и парсинг JWT токенов, которыми сервисы
// статей и авторизации обмениваются через общий секрет.
//
// Maker определяет контракт кодека: подписать набор claims (user_id, email, role)
// и проверить токен обратно. MakerImpl реализует его на HS256 с фиксированным TTL.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с указанными id, email и ролью.
	GenerateToken(userID int64, email, role string) (string, error)
	// ParseToken проверяет подпись, алгоритм и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
