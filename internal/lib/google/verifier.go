// Package google проверяет ID-токены Google и извлекает из них личность пользователя.
package google

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/magabrotheeeer/content-platform/internal/models"
)

// ErrInvalidIDToken возвращается, если токен не прошёл проверку или в нём нет нужных claims.
var ErrInvalidIDToken = errors.New("invalid google id token")

// ValidateFunc совпадает по сигнатуре с idtoken.Validate.
type ValidateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Verifier проверяет ID-токены, выпущенные для clientID.
type Verifier struct {
	clientID string
	validate ValidateFunc
}

// NewVerifier создаёт Verifier, который проверяет подписи ключами Google.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify проверяет idToken и возвращает sub, email и name из его claims.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*models.GoogleIdentity, error) {
	const op = "google.Verify"

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidIDToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if payload.Subject == "" || email == "" {
		return nil, fmt.Errorf("%s: %w: missing sub or email", op, ErrInvalidIDToken)
	}
	name, _ := payload.Claims["name"].(string)

	return &models.GoogleIdentity{
		GoogleID: payload.Subject,
		Email:    email,
		Name:     name,
	}, nil
}
