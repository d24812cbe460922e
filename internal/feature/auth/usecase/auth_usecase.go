// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"adboard_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionTokenTTL は「ログイン状態を保持する」を指定しない場合のトークン有効期間です。
	SessionTokenTTL = 24 * time.Hour

	// RememberTokenTTL は「ログイン状態を保持する」を指定した場合のトークン有効期間です（約182日）。
	RememberTokenTTL = 15695000 * time.Second
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator は署名付きIDトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID uint, email string, ttl time.Duration) (string, error)
}

// authUsecase は登録・ログインのビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスの一意性はスキーマのユニーク制約で保証され、
// 重複時はリポジトリがErrEmailAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にユーザーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken は認証済みユーザーの署名付きIDトークンを生成します。
// rememberがtrueの場合は長期（約182日）、falseの場合は24時間の有効期限を設定します。
func (u *authUsecase) IssueToken(user *entity.User, remember bool) (string, error) {
	ttl := SessionTokenTTL
	if remember {
		ttl = RememberTokenTTL
	}
	token, err := u.tokens.GenerateToken(user.ID, user.Email, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// FindByID はIDでユーザーを取得します。プロフィールページ表示に使用されます。
func (u *authUsecase) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}
