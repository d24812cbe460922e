package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"adboard_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

// mockTokenGenerator is a mock implementation of the TokenGenerator interface.
type mockTokenGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(userID uint, email string, ttl time.Duration) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockTokenGenerator) GenerateToken(userID uint, email string, ttl time.Duration) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, ttl)
	}
	// Default: return a dummy token
	return "mock-token", nil
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default: return user not found error
	return nil, ErrUserNotFound
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default: return user not found error
	return nil, ErrUserNotFound
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Verify that the password is hashed
				if len(user.Password) == 0 || user.Password == "secret1" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				if user.Name != "Alice" || user.Email != "a@x.com" {
					t.Errorf("unexpected user fields: name=%q email=%q", user.Name, user.Email)
				}
				user.ID = 1
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		user, err := uc.Register(context.Background(), "Alice", "a@x.com", "secret1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 {
			t.Errorf("expected ID assigned by repository, got %d", user.ID)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Register(context.Background(), "Alice", "a@x.com", "secret1")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Register(context.Background(), "Alice", "a@x.com", "secret1")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	// Hashed password for testing
	password := "secret1"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Name:     "Alice",
		Email:    "a@x.com",
		Password: string(hashedPassword),
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		user, err := uc.Login(context.Background(), "a@x.com", "secret1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != testUser.ID {
			t.Errorf("expected user ID %d, got %d", testUser.ID, user.ID)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Login(context.Background(), "wrong@x.com", "secret1")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Login(context.Background(), "a@x.com", "wrong-password")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("malformed stored hash fails closed", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 2, Email: email, Password: "not-a-bcrypt-hash"}, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Login(context.Background(), "a@x.com", "secret1")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})
}

func TestAuthUsecase_IssueToken(t *testing.T) {
	testUser := &entity.User{ID: 1, Email: "a@x.com"}

	t.Run("session lifetime without remember", func(t *testing.T) {
		mockGen := &mockTokenGenerator{
			GenerateTokenFunc: func(userID uint, email string, ttl time.Duration) (string, error) {
				if ttl != SessionTokenTTL {
					t.Errorf("expected ttl %v, got %v", SessionTokenTTL, ttl)
				}
				return "short-token", nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockGen)
		token, err := uc.IssueToken(testUser, false)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "short-token" {
			t.Errorf("expected token 'short-token', got: %q", token)
		}
	})

	t.Run("long lifetime with remember", func(t *testing.T) {
		mockGen := &mockTokenGenerator{
			GenerateTokenFunc: func(userID uint, email string, ttl time.Duration) (string, error) {
				if ttl != RememberTokenTTL {
					t.Errorf("expected ttl %v, got %v", RememberTokenTTL, ttl)
				}
				return "long-token", nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockGen)
		token, err := uc.IssueToken(testUser, true)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "long-token" {
			t.Errorf("expected token 'long-token', got: %q", token)
		}
	})

	t.Run("generator failure", func(t *testing.T) {
		mockGen := &mockTokenGenerator{
			GenerateTokenFunc: func(userID uint, email string, ttl time.Duration) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockGen)
		_, err := uc.IssueToken(testUser, false)

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		expectedErrMsg := "failed to generate token: failed to sign token"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message %q, got: %q", expectedErrMsg, err.Error())
		}
	})
}

func TestAuthUsecase_FindByID(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Name: "Alice"}, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		user, err := uc.FindByID(context.Background(), 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Name != "Alice" {
			t.Errorf("expected name 'Alice', got %q", user.Name)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{})
		_, err := uc.FindByID(context.Background(), 999999)

		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})
}
