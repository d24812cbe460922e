// Package handler はfilesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"adboard_backend/internal/feature/files/domain/entity"
	"adboard_backend/internal/feature/files/usecase"
)

// FilesUsecase はファイル操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type FilesUsecase interface {
	// Store はアップロードされたファイルを保存し、メタデータを返します。
	Store(ctx context.Context, originalName, contentType string, size int64, r io.Reader) (*entity.StoredFile, error)
	// Fetch はストレージキーでファイルを取得します。
	Fetch(ctx context.Context, key string) (*entity.StoredFile, io.ReadCloser, error)
}

// FileHandler はアップロード・ダウンロードのHTTPリクエストを処理します。
type FileHandler struct {
	files FilesUsecase
}

// NewFileHandler はFileHandlerの新しいインスタンスを生成します。
func NewFileHandler(files FilesUsecase) *FileHandler {
	return &FileHandler{files: files}
}

// storeOne は1つのmultipartファイルを保存し、レスポンス用メタデータを返します。
func (h *FileHandler) storeOne(c *gin.Context, fh *multipart.FileHeader) (gin.H, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	f, err := h.files.Store(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, src)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"filename": f.OriginalName,
		"key":      f.Key,
		"path":     "/download/" + f.Key,
		"type":     f.ContentType,
		"size":     f.Size,
	}, nil
}

// UploadOne は単一ファイルのアップロードを処理し、保存結果のメタデータを返します。
// フォームフィールド名はupload_fileです。
func (h *FileHandler) UploadOne(c *gin.Context) {
	fh, err := c.FormFile("upload_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload_file is required"})
		return
	}

	meta, err := h.storeOne(c, fh)
	if err != nil {
		if errors.Is(err, usecase.ErrFileTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		slog.Error("upload failed", "error", err, "filename", fh.Filename)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	slog.Info("file uploaded", "key", meta["key"], "size", meta["size"])
	c.JSON(http.StatusOK, meta)
}

// UploadMany は複数ファイルのアップロードを処理し、各ファイルの保存結果を返します。
// フォームフィールド名はuploaded_filesです。各ファイルが個別のキーで保存されます。
func (h *FileHandler) UploadMany(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	fhs := form.File["uploaded_files"]
	if len(fhs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded_files is required"})
		return
	}

	res := make([]gin.H, 0, len(fhs))
	for _, fh := range fhs {
		meta, err := h.storeOne(c, fh)
		if err != nil {
			if errors.Is(err, usecase.ErrFileTooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large", "filename": fh.Filename})
				return
			}
			slog.Error("upload failed", "error", err, "filename", fh.Filename)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		res = append(res, meta)
	}

	slog.Info("files uploaded", "count", len(res))
	c.JSON(http.StatusOK, res)
}

// Download はストレージキーで保存済みファイルを返します。
// 元のファイル名をContent-Dispositionで返します。
func (h *FileHandler) Download(c *gin.Context) {
	key := c.Param("file_name")

	f, rc, err := h.files.Fetch(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, usecase.ErrFileNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		slog.Error("download failed", "error", err, "key", key)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	defer rc.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", f.OriginalName),
	}
	c.DataFromReader(http.StatusOK, f.Size, contentType, rc, extraHeaders)
}
