package content

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/portfolio/pkg/utils"
)

const frontmatterDelimiter = "---"

// Frontmatter holds the metadata block of a content file. Keys are stored
// lower-cased so lookups are case-insensitive.
type Frontmatter map[string]any

// SplitFrontmatter separates the leading metadata block from the body.
// A file without a block, with an unterminated block or with malformed YAML
// yields empty metadata and the whole file as body.
func SplitFrontmatter(raw string) (Frontmatter, string) {
	s := strings.TrimPrefix(raw, "\ufeff")

	block, body, ok := cutBlock(s)
	if !ok {
		return Frontmatter{}, raw
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		slog.Debug("malformed frontmatter, treating file as body", "error", err)
		return Frontmatter{}, raw
	}

	out := make(Frontmatter, len(meta))
	for k, v := range meta {
		out[strings.ToLower(k)] = v
	}
	return out, strings.TrimPrefix(body, "\n")
}

func cutBlock(s string) (string, string, bool) {
	first, rest, found := strings.Cut(s, "\n")
	if !found || strings.TrimRight(first, " \t\r") != frontmatterDelimiter {
		return "", "", false
	}

	offset := 0
	for {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, " \t\r") == frontmatterDelimiter {
			body := ""
			if more {
				body = rest[offset+len(line)+1:]
			}
			return rest[:offset], body, true
		}
		if !more {
			return "", "", false
		}
		offset += len(line) + 1
	}
}

// String returns the value under key as trimmed text.
func (f Frontmatter) String(key string) string {
	v, ok := f[strings.ToLower(key)]
	if !ok || v == nil {
		return ""
	}

	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return t.Format(time.DateOnly)
	case []any:
		return strings.Join(f.Strings(key), ", ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Strings returns a list value. A YAML sequence and a comma separated string
// are both accepted.
func (f Frontmatter) Strings(key string) []string {
	v, ok := f[strings.ToLower(key)]
	if !ok || v == nil {
		return nil
	}

	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if item == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		out = utils.SplitTrimmed(t, ",")
	}
	return out
}

// Time returns the value under key as a time. Unquoted YAML dates arrive
// already decoded; strings go through ParseDate.
func (f Frontmatter) Time(key string) (time.Time, bool) {
	v, ok := f[strings.ToLower(key)]
	if !ok || v == nil {
		return time.Time{}, false
	}

	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		return ParseDate(t)
	}
	return time.Time{}, false
}
