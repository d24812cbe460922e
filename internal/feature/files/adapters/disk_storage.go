package adapters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"adboard_backend/internal/feature/files/usecase"
)

// diskStorage はBlobStorageインターフェースのローカルディスク実装です。
// すべてのファイルをbaseDir直下に保存します。
type diskStorage struct {
	baseDir string
}

// diskStorageがBlobStorageを実装していることをコンパイル時に検証します。
var _ usecase.BlobStorage = (*diskStorage)(nil)

// NewDiskStorage は指定されたディレクトリを保存先とするdiskStorageを生成します。
// ディレクトリが存在しない場合は作成します。
func NewDiskStorage(baseDir string) (*diskStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %q: %w", baseDir, err)
	}
	return &diskStorage{baseDir: baseDir}, nil
}

// path はキーに対応するファイルパスを返します。
// キーはusecase側で生成されたuuidベースの値であり、パス要素を含みませんが、
// 念のためfilepath.Baseで正規化します。
func (s *diskStorage) path(key string) string {
	return filepath.Join(s.baseDir, filepath.Base(key))
}

// Save はキーに対応するファイルを書き込み、書き込んだバイト数を返します。
func (s *diskStorage) Save(key string, r io.Reader) (int64, error) {
	f, err := os.Create(s.path(key))
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(s.path(key))
		return 0, err
	}

	if err := f.Close(); err != nil {
		return 0, err
	}
	return written, nil
}

// Delete はキーに対応するファイルを削除します。
// ファイルが存在しない場合はエラーを返しません。
func (s *diskStorage) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Open はキーに対応するファイルを読み込み用に開きます。
// ファイルが存在しない場合、usecase.ErrFileNotFoundを返します。
func (s *diskStorage) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, usecase.ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}
