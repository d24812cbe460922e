// Package usecase はadsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"adboard_backend/internal/feature/ads/domain/entity"
)

// AdRepository は広告エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AdRepository interface {
	// Create は新しい広告をストレージに永続化します。
	Create(ctx context.Context, ad *entity.Advertisement) error

	// FindByID は指定されたIDに一致する広告を取得します。
	// 広告が存在しない場合、ErrAdNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Advertisement, error)

	// ListAll は全広告を作成順で取得します。
	ListAll(ctx context.Context) ([]entity.Advertisement, error)

	// ListByUser は指定されたユーザーの広告を作成順で取得します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Advertisement, error)
}

// OwnerRepository は広告の所有者（ユーザー）の存在確認を抽象化します。
type OwnerRepository interface {
	// Exists は指定されたIDのユーザーが存在するかを返します。
	Exists(ctx context.Context, id uint) (bool, error)
}

// adsUsecase は広告の投稿・閲覧のビジネスロジックを実装します。
type adsUsecase struct {
	ads    AdRepository
	owners OwnerRepository
}

// NewAdsUsecase はadsUsecaseの新しいインスタンスを生成します。
func NewAdsUsecase(ads AdRepository, owners OwnerRepository) *adsUsecase {
	return &adsUsecase{
		ads:    ads,
		owners: owners,
	}
}

// Post は認証済みユーザーの新しい広告を作成します。
// 参照整合性を保証するため、挿入前に所有者の存在を確認します。
func (u *adsUsecase) Post(ctx context.Context, userID uint, title, desc string) (*entity.Advertisement, error) {
	ok, err := u.owners.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ad owner: %w", err)
	}
	if !ok {
		return nil, ErrOwnerNotFound
	}

	ad := &entity.Advertisement{UserID: userID, Title: title, Desc: desc}
	if err := u.ads.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Get はIDで広告を1件取得します。
func (u *adsUsecase) Get(ctx context.Context, id uint) (*entity.Advertisement, error) {
	return u.ads.FindByID(ctx, id)
}

// List は全広告を取得します。トップページの一覧表示に使用されます。
func (u *adsUsecase) List(ctx context.Context) ([]entity.Advertisement, error) {
	return u.ads.ListAll(ctx)
}

// ListByUser は指定されたユーザーの広告を取得します。プロフィールページに使用されます。
func (u *adsUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Advertisement, error) {
	return u.ads.ListByUser(ctx, userID)
}
