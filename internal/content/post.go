package content

import (
	"sort"
	"strings"
	"time"
)

const (
	DefaultCategory = "General"
	DefaultReadTime = "5 min read"
)

// Post is a content file after frontmatter parsing, with listing defaults
// applied.
type Post struct {
	Filename string
	Slug     string
	Title    string
	Excerpt  string
	Category string
	Tags     []string
	Author   string
	ReadTime string
	Status   string
	Date     time.Time
	HasDate  bool
	Meta     Frontmatter
	Body     string
}

// NewPost builds a post from a file name and its raw contents.
func NewPost(filename, raw string) Post {
	meta, body := SplitFrontmatter(raw)
	slug := SlugFromFilename(filename)

	p := Post{
		Filename: filename,
		Slug:     slug,
		Title:    meta.String("title"),
		Excerpt:  meta.String("excerpt"),
		Category: meta.String("category"),
		Tags:     meta.Strings("tags"),
		Author:   meta.String("author"),
		ReadTime: meta.String("readTime"),
		Status:   meta.String("status"),
		Meta:     meta,
		Body:     body,
	}
	p.Date, p.HasDate = meta.Time("date")

	if p.Title == "" {
		p.Title = TitleFromSlug(slug)
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.ReadTime == "" {
		p.ReadTime = DefaultReadTime
	}
	return p
}

// Public reports whether p may be served on public pages at now. Drafts are
// never public; scheduled posts become public once scheduledDate has passed.
func (p Post) Public(now time.Time) bool {
	switch strings.ToLower(p.Status) {
	case "draft":
		return false
	case "scheduled":
		at, ok := p.Meta.Time("scheduledDate")
		return ok && !at.After(now)
	}
	return true
}

// PublicPosts keeps the posts that are public at now, in order.
func PublicPosts(posts []Post, now time.Time) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Public(now) {
			out = append(out, p)
		}
	}
	return out
}

// DisplayDate is the listing form of the post date.
func (p Post) DisplayDate() string {
	return DisplayDate(p.Date, p.HasDate)
}

// SortNewestFirst orders posts by date descending. Undated posts keep their
// relative order after every dated one.
func SortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		if !a.HasDate {
			return false
		}
		return a.Date.After(b.Date)
	})
}
