// Package handler はadsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adboard_backend/internal/feature/ads/domain/entity"
	"adboard_backend/internal/feature/ads/transport/http/dto"
	"adboard_backend/internal/feature/ads/usecase"
	authentity "adboard_backend/internal/feature/auth/domain/entity"
	authusecase "adboard_backend/internal/feature/auth/usecase"
	jwtmw "adboard_backend/internal/platform/jwt"
)

// AdsUsecase は広告操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AdsUsecase interface {
	// Post は認証済みユーザーの新しい広告を作成します。
	Post(ctx context.Context, userID uint, title, desc string) (*entity.Advertisement, error)
	// Get はIDで広告を1件取得します。
	Get(ctx context.Context, id uint) (*entity.Advertisement, error)
	// List は全広告を取得します。
	List(ctx context.Context) ([]entity.Advertisement, error)
	// ListByUser は指定されたユーザーの広告を取得します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Advertisement, error)
}

// UserDirectory は広告の作者・プロフィール表示用のユーザー検索を定義します。
type UserDirectory interface {
	// FindByID はIDでユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// AdHandler は広告一覧・詳細・投稿・プロフィールページのHTTPリクエストを処理します。
type AdHandler struct {
	ads   AdsUsecase
	users UserDirectory
}

// NewAdHandler はAdHandlerの新しいインスタンスを生成します。
func NewAdHandler(ads AdsUsecase, users UserDirectory) *AdHandler {
	return &AdHandler{ads: ads, users: users}
}

// parseID はパスパラメータを数値IDに変換します。
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Index はトップページ（全広告の一覧）を表示します。
func (h *AdHandler) Index(c *gin.Context) {
	userID, flag := jwtmw.CurrentUserID(c)

	ads, err := h.ads.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list ads", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"result":  ads,
		"flag":    flag,
		"user_id": userID,
	})
}

// Note は広告の詳細ページ（広告＋作者）を表示します。
// 広告または作者が存在しない場合は404を返します。
func (h *AdHandler) Note(c *gin.Context) {
	advtID, ok := parseID(c, "advt_id")
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	ad, err := h.ads.Get(c.Request.Context(), advtID)
	if err != nil {
		if errors.Is(err, usecase.ErrAdNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		slog.Error("failed to load ad", "error", err, "advt_id", advtID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	author, err := h.users.FindByID(c.Request.Context(), ad.UserID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		slog.Error("failed to load ad author", "error", err, "user_id", ad.UserID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	_, flag := jwtmw.CurrentUserID(c)
	c.HTML(http.StatusOK, "note.html", gin.H{
		"id":     ad.ID,
		"title":  ad.Title,
		"desc":   ad.Desc,
		"result": author,
		"flag":   flag,
	})
}

// NewAdPage は広告作成フォームを表示します。
// 未認証のリクエストはIdentityRequiredミドルウェアが/loginへリダイレクトします。
func (h *AdHandler) NewAdPage(c *gin.Context) {
	c.HTML(http.StatusOK, "advt.html", gin.H{"flag": true})
}

// CreateAd は広告の投稿を処理します。
// 広告は認証済みユーザーに帰属します。作成後は詳細ページへリダイレクトします。
func (h *AdHandler) CreateAd(c *gin.Context) {
	userID, ok := jwtmw.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form dto.AdForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("ad validation failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusBadRequest, "advt.html", gin.H{"flag": true, "error": "invalid request"})
		return
	}

	ad, err := h.ads.Post(c.Request.Context(), userID, form.Title, form.Desc)
	if err != nil {
		if errors.Is(err, usecase.ErrOwnerNotFound) {
			// 削除済みユーザーの古いトークン。再ログインさせる
			c.SetCookie(jwtmw.CookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/login")
			return
		}
		slog.Error("failed to create ad", "error", err, "user_id", userID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("ad created", "advt_id", ad.ID, "user_id", userID)
	c.Redirect(http.StatusFound, fmt.Sprintf("/note/%d", ad.ID))
}

// Profile はユーザーのプロフィールページ（ユーザー情報＋投稿広告）を表示します。
// ユーザーが存在しない場合は404を返します。
func (h *AdHandler) Profile(c *gin.Context) {
	profileID, ok := parseID(c, "user_id")
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		slog.Error("failed to load profile", "error", err, "user_id", profileID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	ads, err := h.ads.ListByUser(c.Request.Context(), profileID)
	if err != nil {
		slog.Error("failed to list user ads", "error", err, "user_id", profileID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	currentID, flag := jwtmw.CurrentUserID(c)
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"note_result": ads,
		"flag":        flag,
		"own":         flag && currentID == user.ID,
	})
}
