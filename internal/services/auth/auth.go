// Package auth содержит логику регистрации, входа по паролю и через Google,
// а также проверки выданных токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/content-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/content-platform/internal/lib/password"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
	"github.com/magabrotheeeer/content-platform/internal/storage"
)

var (
	// ErrEmailTaken email уже принадлежит другому пользователю.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials неверная пара email/пароль. Причина намеренно не уточняется.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists учётную запись Google создать нельзя: google_id или email уже заняты.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidToken токен не прошёл проверку подписи, алгоритма или срока действия.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound токен корректен, но пользователя уже нет.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает записанную строку.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByGoogleID возвращает пользователя по google_id или storage.ErrNotFound.
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	// GetUser возвращает пользователя по ID или storage.ErrNotFound.
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// GoogleVerifier проверяет ID-токен Google.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*models.GoogleIdentity, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	google   GoogleVerifier
	log      *slog.Logger
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService. google может быть nil:
// тогда данные google_auth принимаются без проверки ID-токена.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, google GoogleVerifier, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		google:   google,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register создает пользователя с паролем и ролью "user" и выдаёт ему токен.
func (s *AuthService) Register(ctx context.Context, email, name, rawPassword string) (*models.User, string, error) {
	const op = "auth.Register"

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.CreateUser(ctx, models.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, token, nil
}

// Login проверяет пароль пользователя и выдаёт токен. Неизвестный email,
// учётная запись без пароля и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if user.PasswordHash == nil {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.CompareHash(*user.PasswordHash, rawPassword); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// GoogleAuth входит по учётной записи Google, создавая её при первом входе.
// created сообщает, что пользователь был создан этим вызовом.
//
// Если сервис настроен на проверку и передан idToken, данные личности берутся
// из проверенного токена, а его sub должен совпасть с identity.GoogleID.
func (s *AuthService) GoogleAuth(ctx context.Context, identity models.GoogleIdentity, idToken string) (user *models.User, token string, created bool, err error) {
	const op = "auth.GoogleAuth"

	if s.google != nil && idToken != "" {
		verified, err := s.google.Verify(ctx, idToken)
		if err != nil {
			s.log.Warn("google id token rejected", sl.Err(err))
			return nil, "", false, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		if verified.GoogleID != identity.GoogleID {
			return nil, "", false, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		identity.Email = verified.Email
		if verified.Name != "" {
			identity.Name = verified.Name
		}
	}

	user, err = s.users.GetUserByGoogleID(ctx, identity.GoogleID)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		googleID := identity.GoogleID
		user, err = s.users.CreateUser(ctx, models.User{
			Email:     identity.Email,
			Name:      identity.Name,
			GoogleID:  &googleID,
			Role:      models.RoleUser,
			CreatedAt: s.now(),
		})
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return nil, "", false, fmt.Errorf("%s: %w", op, ErrAccountExists)
			}
			return nil, "", false, fmt.Errorf("%s: %w", op, err)
		}
		created = true
		s.log.Info("google account created", slog.Int64("user_id", user.ID))
	default:
		return nil, "", false, fmt.Errorf("%s: %w", op, err)
	}

	token, err = s.issue(user)
	if err != nil {
		return nil, "", false, fmt.Errorf("%s: %w", op, err)
	}
	return user, token, created, nil
}

// VerifyToken проверяет токен и заново читает пользователя из базы,
// чтобы вернуть актуальные роль и подписку.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.VerifyToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	return s.jwtMaker.GenerateToken(user.ID, user.Email, string(user.Role))
}
