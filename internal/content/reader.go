package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

const DefaultDir = "content/blogs"

// DirFrom reads CONTENT_DIR through lookup.
func DirFrom(lookup func(string) string) string {
	if dir := lookup("CONTENT_DIR"); dir != "" {
		return dir
	}
	return DefaultDir
}

// File is one raw content file.
type File struct {
	Name string
	Raw  string
}

// Reader scans a flat directory of markdown files.
type Reader struct {
	dir string
}

func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

func (r *Reader) Dir() string {
	return r.dir
}

// Files returns every .md/.mdx file in name order. A missing directory is
// an empty collection; an unreadable file is logged and skipped.
func (r *Reader) Files(ctx context.Context) ([]File, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []File{}, nil
		}
		return nil, fmt.Errorf("failed to list content dir %s: %w", r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsContentFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]File, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			slog.Warn("skipping unreadable content file", "file", name, "error", err)
			continue
		}
		files = append(files, File{Name: name, Raw: string(b)})
	}
	return files, nil
}

// Posts parses every content file in name order.
func (r *Reader) Posts(ctx context.Context) ([]Post, error) {
	files, err := r.Files(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(files))
	for _, f := range files {
		posts = append(posts, NewPost(f.Name, f.Raw))
	}
	return posts, nil
}

// PostBySlug finds the first post whose slug matches.
func (r *Reader) PostBySlug(ctx context.Context, slug string) (Post, bool, error) {
	posts, err := r.Posts(ctx)
	if err != nil {
		return Post{}, false, err
	}

	for _, p := range posts {
		if p.Slug == slug {
			return p, true, nil
		}
	}
	return Post{}, false, nil
}
