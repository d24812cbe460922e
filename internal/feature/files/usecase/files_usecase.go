// Package usecase はfilesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"adboard_backend/internal/feature/files/domain/entity"
)

// DefaultMaxUploadBytes はアップロードサイズ上限のデフォルト値です（10MiB）。
const DefaultMaxUploadBytes = 10 << 20

// FileRepository はファイルメタデータの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type FileRepository interface {
	// Create は新しいファイルメタデータをストレージに永続化します。
	Create(ctx context.Context, f *entity.StoredFile) error

	// FindByKey はストレージキーでメタデータを取得します。
	// 該当するファイルが存在しない場合、ErrFileNotFoundを返します。
	FindByKey(ctx context.Context, key string) (*entity.StoredFile, error)
}

// BlobStorage はファイル本体の保存先を抽象化します。
type BlobStorage interface {
	// Save はキーに対応するファイルを書き込み、書き込んだバイト数を返します。
	Save(key string, r io.Reader) (int64, error)

	// Open はキーに対応するファイルを読み込み用に開きます。
	Open(key string) (io.ReadCloser, error)

	// Delete はキーに対応するファイルを削除します。
	// ファイルが存在しない場合はエラーを返しません。
	Delete(key string) error
}

// filesUsecase はファイルのアップロード・ダウンロードのビジネスロジックを実装します。
type filesUsecase struct {
	files    FileRepository
	blobs    BlobStorage
	maxBytes int64
}

// NewFilesUsecase はfilesUsecaseの新しいインスタンスを生成します。
// maxBytesが0以下の場合、DefaultMaxUploadBytesが使用されます。
func NewFilesUsecase(files FileRepository, blobs BlobStorage, maxBytes int64) *filesUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &filesUsecase{
		files:    files,
		blobs:    blobs,
		maxBytes: maxBytes,
	}
}

// storageKey はクライアント提供のファイル名から衝突しないストレージキーを生成します。
// キーは「uuid + 元の拡張子（小文字）」で、パス要素は一切含まれません。
func storageKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	// 異常に長い拡張子は切り捨てる（".tar.gz"等は最後の要素のみ保持）
	if len(ext) > 10 {
		ext = ""
	}
	return uuid.NewString() + ext
}

// Store はアップロードされたファイルを保存し、メタデータを返します。
// 申告サイズが上限を超える場合、ErrFileTooLargeを返します。
// 申告サイズを信用せず、読み込みも上限＋1バイトで打ち切って検証します。
func (u *filesUsecase) Store(ctx context.Context, originalName, contentType string, size int64, r io.Reader) (*entity.StoredFile, error) {
	if size > u.maxBytes {
		return nil, ErrFileTooLarge
	}

	key := storageKey(originalName)

	written, err := u.blobs.Save(key, io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to save file %q: %w", key, err)
	}
	if written > u.maxBytes {
		// 申告サイズが嘘だった場合。書き込み済みのファイルを残さない
		u.removeBlob(key)
		return nil, ErrFileTooLarge
	}

	f := &entity.StoredFile{
		Key:          key,
		OriginalName: filepath.Base(originalName),
		ContentType:  contentType,
		Size:         written,
	}
	if err := u.files.Create(ctx, f); err != nil {
		// メタデータのない本体は到達不能なので削除する
		u.removeBlob(key)
		return nil, fmt.Errorf("failed to save file metadata: %w", err)
	}
	return f, nil
}

// removeBlob はエラー経路で書き込み済みの本体を削除します。
func (u *filesUsecase) removeBlob(key string) {
	if err := u.blobs.Delete(key); err != nil {
		slog.Warn("failed to remove incomplete upload", "key", key, "error", err)
	}
}

// Fetch はストレージキーでファイルを取得します。
// メタデータとファイル本体のリーダーを返します。呼び出し側がCloseする責任を持ちます。
func (u *filesUsecase) Fetch(ctx context.Context, key string) (*entity.StoredFile, io.ReadCloser, error) {
	// パストラバーサル対策：キーにパス要素を許可しない
	if key != filepath.Base(key) || key == "" || key == "." {
		return nil, nil, ErrFileNotFound
	}

	f, err := u.files.FindByKey(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	rc, err := u.blobs.Open(f.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file %q: %w", f.Key, err)
	}
	return f, rc, nil
}
