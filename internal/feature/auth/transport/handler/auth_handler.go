// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"adboard_backend/internal/feature/auth/domain/entity"
	"adboard_backend/internal/feature/auth/transport/http/dto"
	"adboard_backend/internal/feature/auth/usecase"
	jwtmw "adboard_backend/internal/platform/jwt"
	"adboard_backend/internal/shared/ratelimiter"
)

// rememberCookieMaxAge は「ログイン状態を保持する」指定時のCookie有効期間（秒、約182日）です。
const rememberCookieMaxAge = 15695000

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定された名前・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にユーザーを返します。
	Login(ctx context.Context, email, password string) (*entity.User, error)
	// IssueToken は認証済みユーザーの署名付きIDトークンを生成します。
	IssueToken(user *entity.User, remember bool) (string, error)
}

// AuthHandler は登録・ログイン・ログアウトのHTTPリクエストを処理します。
// フォームPOSTを受けてリダイレクトで応答するサーバーレンダリング型のハンドラーです。
type AuthHandler struct {
	auth    AuthUsecase
	limiter ratelimiter.RateLimiterInterface
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// limiterは認証エンドポイントへの総当たり攻撃をクライアントIP単位で抑制します。
func NewAuthHandler(auth AuthUsecase, limiter ratelimiter.RateLimiterInterface) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// LoginPage はログインフォームを表示します。
// 既に認証済みの場合は自分のプロフィールへリダイレクトします。
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if id, ok := jwtmw.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%d", id))
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"flag": false})
}

// RegistrationPage は登録フォームを表示します。
func (h *AuthHandler) RegistrationPage(c *gin.Context) {
	_, flag := jwtmw.CurrentUserID(c)
	c.HTML(http.StatusOK, "registration.html", gin.H{"flag": flag})
}

// Register はユーザー登録を処理します。
// - フォームをRegistrationFormにバインド（不正時は400）
// - メール重複時は登録フォームへリダイレクト（メッセージは出さない）
// - 成功時は/profile/{id}へリダイレクト。remember指定時のみCookieを設定
func (h *AuthHandler) Register(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		c.String(http.StatusTooManyRequests, "too many requests")
		return
	}

	var form dto.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("registration validation failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusBadRequest, "registration.html", gin.H{"flag": false, "error": "invalid request"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		// 重複メールか否かを区別せず登録フォームへ戻す（ユーザー列挙攻撃の防止）
		slog.Warn("registration failed", "error", err, "email", form.Email, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			c.Redirect(http.StatusFound, "/registration")
			return
		}
		c.String(http.StatusInternalServerError, "registration failed")
		return
	}

	// 既存のCookieを無条件でクリア
	c.SetCookie(jwtmw.CookieName, "", -1, "/", "", false, true)

	// remember指定時のみ長期Cookieを設定
	if form.Remember {
		token, err := h.auth.IssueToken(user, true)
		if err != nil {
			slog.Error("token issue failed after registration", "error", err, "user_id", user.ID)
		} else {
			c.SetCookie(jwtmw.CookieName, token, rememberCookieMaxAge, "/", "", false, true)
		}
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%d", user.ID))
}

// Login はログインを処理します。
// - フォームをLoginFormにバインド（不正時は400）
// - 認証失敗時はログインフォームへリダイレクト（Cookieは設定しない）
// - 成功時はCookieを設定して/profile/{id}へリダイレクト。
//   remember指定時は約182日、未指定時はセッションスコープのCookieになります。
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		c.String(http.StatusTooManyRequests, "too many requests")
		return
	}

	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"flag": false, "error": "invalid request"})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		// メール不明とパスワード不一致を区別しない
		slog.Warn("login failed", "email", form.Email, "remote_addr", c.ClientIP())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := h.auth.IssueToken(user, form.Remember)
	if err != nil {
		slog.Error("token issue failed", "error", err, "user_id", user.ID)
		c.String(http.StatusInternalServerError, "login failed")
		return
	}

	maxAge := 0 // セッションスコープ（Max-Age属性なし）
	if form.Remember {
		maxAge = rememberCookieMaxAge
	}
	c.SetCookie(jwtmw.CookieName, token, maxAge, "/", "", false, true)

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%d", user.ID))
}

// Logout はCookieを無条件でクリアし、ログインフォームへリダイレクトします。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(jwtmw.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
