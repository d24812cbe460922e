// Package adapters はadsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"adboard_backend/internal/feature/ads/domain/entity"
	"adboard_backend/internal/feature/ads/usecase"
)

// adGorm はAdRepositoryインターフェースのGORM実装です。
type adGorm struct {
	db *gorm.DB
}

// adGormがAdRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AdRepository = (*adGorm)(nil)

// NewAdGorm は指定されたgorm.DB接続でadGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAdGorm(db *gorm.DB) *adGorm {
	return &adGorm{db: db}
}

// Create は広告をデータベースに追加します。
func (r *adGorm) Create(ctx context.Context, ad *entity.Advertisement) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

// FindByID はIDで広告を取得します。
// 広告が存在しない場合、usecase.ErrAdNotFoundを返します。
func (r *adGorm) FindByID(ctx context.Context, id uint) (*entity.Advertisement, error) {
	var ad entity.Advertisement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAdNotFound
		}
		return nil, err
	}
	return &ad, nil
}

// ListAll は全広告を主キー順（＝作成順）で取得します。
func (r *adGorm) ListAll(ctx context.Context) ([]entity.Advertisement, error) {
	var ads []entity.Advertisement
	if err := r.db.WithContext(ctx).Order("id").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// ListByUser は指定されたユーザーの広告を主キー順で取得します。
func (r *adGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Advertisement, error) {
	var ads []entity.Advertisement
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}
