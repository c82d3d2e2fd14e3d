package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Store keeps uploaded images and returns the public URL they are served at.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Type string

const (
	Local Type = "local"
	S3    Type = "s3"
)

var ErrInvalidKey = errors.New("invalid blob key")

// cleanKey reduces key to a single path element.
func cleanKey(key string) (string, error) {
	k := path.Base(strings.ReplaceAll(key, "\\", "/"))
	if k == "." || k == "/" || k == ".." || k == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return k, nil
}
