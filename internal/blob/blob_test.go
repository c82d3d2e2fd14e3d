package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "gallery")

	s, err := NewLocalStore(dir, GalleryURLPrefix)
	require.NoError(t, err)

	url, err := s.Put(ctx, "../../etc/photo-1.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/gallery/photo-1.jpg", url)

	b, err := os.ReadFile(filepath.Join(dir, "photo-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(b))

	require.NoError(t, s.Delete(ctx, "photo-1.jpg"))
	require.NoError(t, s.Delete(ctx, "photo-1.jpg"))
	_, err = os.Stat(filepath.Join(dir, "photo-1.jpg"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Put(ctx, "..", strings.NewReader(""), "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, Local, cfg.Type)
	assert.Equal(t, filepath.Join("public", "gallery"), cfg.GalleryDir())

	env := map[string]string{"BLOB_TYPE": "s3"}
	_, err = Load(func(k string) string { return env[k] })
	assert.Error(t, err)

	env["S3_BUCKET"] = "photos"
	env["S3_ENDPOINT"] = "http://localhost:9000"
	cfg, err = Load(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "photos", cfg.S3.Bucket)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)

	_, err = Load(func(k string) string {
		if k == "BLOB_TYPE" {
			return "ftp"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestS3Store_ObjectKey(t *testing.T) {
	s, err := NewS3Store(context.Background(), S3Config{
		Bucket:          "b",
		Region:          "us-east-1",
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
		Prefix:          "gallery/",
	})
	require.NoError(t, err)

	k, err := s.objectKey("dir/photo.png")
	require.NoError(t, err)
	assert.Equal(t, "gallery/photo.png", k)
}
