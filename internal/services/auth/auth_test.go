package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/content-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/content-platform/internal/lib/password"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
	"github.com/magabrotheeeer/content-platform/internal/services/auth"
	"github.com/magabrotheeeer/content-platform/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

// Мок для GoogleVerifier
type GoogleVerifierMock struct {
	mock.Mock
}

func (m *GoogleVerifierMock) Verify(ctx context.Context, idToken string) (*models.GoogleIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GoogleIdentity), args.Error(1)
}

func newService(repo *UserRepoMock, maker *JwtMakerMock) *auth.AuthService {
	return auth.NewAuthService(repo, maker, nil, sl.Discard())
}

func TestAuthService_Register(t *testing.T) {
	dbErr := errors.New("db error")

	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
		wantToken  string
	}{
		{
			name: "successful registration",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, storage.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "new@example.com" &&
						u.Name == "New" &&
						u.PasswordHash != nil &&
						password.CompareHash(*u.PasswordHash, "secret123") == nil &&
						u.GoogleID == nil &&
						u.Role == models.RoleUser &&
						!u.CreatedAt.IsZero()
				})).Return(&models.User{ID: 11, Email: "new@example.com", Name: "New", Role: models.RoleUser}, nil).Once()
				j.On("GenerateToken", int64(11), "new@example.com", "user").Return("jwt-token", nil).Once()
			},
			wantToken: "jwt-token",
		},
		{
			name: "email already registered",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "new@example.com").Return(&models.User{ID: 1}, nil).Once()
			},
			wantErr: auth.ErrEmailTaken,
		},
		{
			name: "insert races into unique index",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, storage.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil, storage.ErrConflict).Once()
			},
			wantErr: auth.ErrEmailTaken,
		},
		{
			name: "lookup error",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, dbErr).Once()
			},
			wantErr: dbErr,
		},
		{
			name: "token generation error",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, storage.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(&models.User{ID: 11, Email: "new@example.com", Role: models.RoleUser}, nil).Once()
				j.On("GenerateToken", int64(11), "new@example.com", "user").Return("", errors.New("token error")).Once()
			},
			wantErr: errors.New("token error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)

			user, token, err := newService(repo, jwtMock).Register(context.Background(), "new@example.com", "New", "secret123")
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, auth.ErrEmailTaken) || errors.Is(tt.wantErr, dbErr) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, int64(11), user.ID)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hashedPassword, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	testUser := &models.User{
		ID:           5,
		Email:        "test@example.com",
		Name:         "Test",
		PasswordHash: &hashedPassword,
		Role:         models.RoleEditor,
	}
	googleOnly := &models.User{ID: 6, Email: "g@example.com", Role: models.RoleUser}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", int64(5), "test@example.com", "editor").Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "account without password",
			email:    "g@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "g@example.com").Return(googleOnly, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)

			user, token, err := newService(repo, jwtMock).Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, testUser, user)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_GoogleAuth(t *testing.T) {
	identity := models.GoogleIdentity{GoogleID: "g-123", Email: "g@example.com", Name: "G"}
	existing := &models.User{ID: 3, Email: "g@example.com", Name: "G", Role: models.RoleUser}

	tests := []struct {
		name        string
		setupMocks  func(r *UserRepoMock, j *JwtMakerMock)
		wantCreated bool
		wantErr     error
	}{
		{
			name: "existing account",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByGoogleID", mock.Anything, "g-123").Return(existing, nil).Once()
				j.On("GenerateToken", int64(3), "g@example.com", "user").Return("tok", nil).Once()
			},
		},
		{
			name: "first login creates account",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByGoogleID", mock.Anything, "g-123").Return(nil, storage.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.GoogleID != nil && *u.GoogleID == "g-123" &&
						u.PasswordHash == nil &&
						u.Email == "g@example.com" &&
						u.Role == models.RoleUser
				})).Return(existing, nil).Once()
				j.On("GenerateToken", int64(3), "g@example.com", "user").Return("tok", nil).Once()
			},
			wantCreated: true,
		},
		{
			name: "concurrent first login",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByGoogleID", mock.Anything, "g-123").Return(nil, storage.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil, storage.ErrConflict).Once()
			},
			wantErr: auth.ErrAccountExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)

			user, token, created, err := newService(repo, jwtMock).GoogleAuth(context.Background(), identity, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "tok", token)
				assert.Equal(t, tt.wantCreated, created)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_GoogleAuth_IDToken(t *testing.T) {
	identity := models.GoogleIdentity{GoogleID: "g-123", Email: "body@example.com", Name: "Body"}

	t.Run("verified claims replace body", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		verifier := new(GoogleVerifierMock)
		svc := auth.NewAuthService(repo, jwtMock, verifier, sl.Discard())

		verifier.On("Verify", mock.Anything, "id-token").
			Return(&models.GoogleIdentity{GoogleID: "g-123", Email: "real@example.com"}, nil).Once()
		repo.On("GetUserByGoogleID", mock.Anything, "g-123").Return(nil, storage.ErrNotFound).Once()
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "real@example.com" && u.Name == "Body"
		})).Return(&models.User{ID: 9, Email: "real@example.com", Role: models.RoleUser}, nil).Once()
		jwtMock.On("GenerateToken", int64(9), "real@example.com", "user").Return("tok", nil).Once()

		_, _, created, err := svc.GoogleAuth(context.Background(), identity, "id-token")
		require.NoError(t, err)
		assert.True(t, created)
		repo.AssertExpectations(t)
		verifier.AssertExpectations(t)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		repo := new(UserRepoMock)
		verifier := new(GoogleVerifierMock)
		svc := auth.NewAuthService(repo, new(JwtMakerMock), verifier, sl.Discard())

		verifier.On("Verify", mock.Anything, "id-token").
			Return(&models.GoogleIdentity{GoogleID: "someone-else", Email: "x@example.com"}, nil).Once()

		_, _, _, err := svc.GoogleAuth(context.Background(), identity, "id-token")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		repo.AssertNotCalled(t, "GetUserByGoogleID", mock.Anything, mock.Anything)
	})

	t.Run("invalid id token", func(t *testing.T) {
		verifier := new(GoogleVerifierMock)
		svc := auth.NewAuthService(new(UserRepoMock), new(JwtMakerMock), verifier, sl.Discard())

		verifier.On("Verify", mock.Anything, "bad").Return(nil, errors.New("bad signature")).Once()

		_, _, _, err := svc.GoogleAuth(context.Background(), identity, "bad")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	fresh := &models.User{ID: 4, Email: "u@example.com", Role: models.RoleAdmin}

	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name: "valid token returns fresh user",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").Return(&customjwt.CustomClaims{UserID: 4, Role: "user"}, nil).Once()
				r.On("GetUser", mock.Anything, int64(4)).Return(fresh, nil).Once()
			},
		},
		{
			name: "invalid token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").Return(nil, customjwt.ErrInvalidToken).Once()
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "user deleted",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").Return(&customjwt.CustomClaims{UserID: 4}, nil).Once()
				r.On("GetUser", mock.Anything, int64(4)).Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: auth.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)

			user, err := newService(repo, jwtMock).VerifyToken(context.Background(), "tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.RoleAdmin, user.Role, "role comes from the database, not the token")
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
