package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const imageDir = "posts"

// ImageStore keeps post images on local disk under root/posts.
type ImageStore struct {
	root     string
	maxBytes int64
}

func NewImageStore(root string, maxMB int64) *ImageStore {
	if maxMB <= 0 {
		maxMB = 10
	}
	return &ImageStore{root: root, maxBytes: maxMB << 20}
}

// Save validates an upload and writes it to disk. It returns the path relative to
// the media root, e.g. "posts/6f1c...e2.png".
func (s *ImageStore) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", apperr.Validation("image", fmt.Sprintf("Image is larger than %d MB.", s.maxBytes>>20))
	}

	file, err := header.Open()
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("open upload: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperr.Validation("image", fmt.Sprintf("Image is larger than %d MB.", s.maxBytes>>20))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", apperr.Validation("image",
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	// 优先使用探测到的扩展名, 不信任客户端文件名
	ext := mtype.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(header.Filename))
	}

	rel := path.Join(imageDir, uuid.NewString()+ext)
	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", apperr.Internal(fmt.Errorf("create media dir: %w", err))
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", apperr.Internal(fmt.Errorf("write image: %w", err))
	}

	logger.L().Info("image saved", zap.String("path", rel), zap.String("mime", mtype.String()))
	return rel, nil
}

// Remove deletes a previously saved image. Failures are logged, not returned.
func (s *ImageStore) Remove(rel string) {
	if rel == "" {
		return
	}
	clean := path.Clean("/" + rel)[1:]
	if !strings.HasPrefix(clean, imageDir+"/") {
		logger.L().Warn("refusing to remove image outside media dir", zap.String("path", rel))
		return
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean))); err != nil && !os.IsNotExist(err) {
		logger.L().Warn("remove image failed", zap.String("path", rel), zap.Error(err))
	}
}

// Exists reports whether rel is present on disk.
func (s *ImageStore) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	return err == nil
}
