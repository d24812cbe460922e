// Package adapters はfilesフィーチャーのリポジトリ・ストレージ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"adboard_backend/internal/feature/files/domain/entity"
	"adboard_backend/internal/feature/files/usecase"
)

// fileGorm はFileRepositoryインターフェースのGORM実装です。
type fileGorm struct {
	db *gorm.DB
}

// fileGormがFileRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.FileRepository = (*fileGorm)(nil)

// NewFileGorm は指定されたgorm.DB接続でfileGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewFileGorm(db *gorm.DB) *fileGorm {
	return &fileGorm{db: db}
}

// Create はファイルメタデータをデータベースに追加します。
func (r *fileGorm) Create(ctx context.Context, f *entity.StoredFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// FindByKey はストレージキーでメタデータを取得します。
// 該当するファイルが存在しない場合、usecase.ErrFileNotFoundを返します。
func (r *fileGorm) FindByKey(ctx context.Context, key string) (*entity.StoredFile, error) {
	var f entity.StoredFile
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFileNotFound
		}
		return nil, err
	}
	return &f, nil
}
