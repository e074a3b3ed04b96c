package imagestore

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrImageTypeUnsupported = errors.New("image type unsupported")
	ErrImageKeyInvalid      = errors.New("image key invalid")
	ErrImageNotFound        = errors.New("image not found")
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Keys are a generated UUID plus a whitelisted extension. Nothing from
// the uploaded filename except the extension survives into the key, so
// keys are safe in paths and URLs.
var imageKeyPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}\.[a-z]+$`)

// Store keeps uploaded recipe photos as flat files under one root
// directory.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("image store root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create image store root: %w", err)
	}
	return &Store{root: root}, nil
}

// SaveUpload stores one multipart upload and returns its generated key.
func (store *Store) SaveUpload(fileHeader *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", ErrImageTypeUnsupported
	}
	key := uuid.NewString() + extension

	source, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(filepath.Join(store.root, key))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		_ = os.Remove(destination.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return key, nil
}

// Resolve validates key and returns the absolute path of the stored
// image.
func (store *Store) Resolve(key string) (string, error) {
	if err := validateImageKey(key); err != nil {
		return "", err
	}
	path := filepath.Join(store.root, key)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrImageNotFound
		}
		return "", fmt.Errorf("stat image file: %w", err)
	}
	return path, nil
}

// Remove deletes the stored image. Removing an absent or empty key is a
// no-op.
func (store *Store) Remove(key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if err := validateImageKey(key); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(store.root, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

func validateImageKey(key string) error {
	if !imageKeyPattern.MatchString(key) {
		return ErrImageKeyInvalid
	}
	extension := filepath.Ext(key)
	if _, ok := allowedImageExtensions[extension]; !ok {
		return ErrImageKeyInvalid
	}
	return nil
}
