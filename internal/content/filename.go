package content

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	filenamePattern  = regexp.MustCompile(`^(\d{4})-(\d{2})-week(\d+)-(.+)\.mdx?$`)
	conventionPrefix = regexp.MustCompile(`^\d{4}-\d{2}-week\d+-`)
	contentExt       = regexp.MustCompile(`\.mdx?$`)
	slugUnsafe       = regexp.MustCompile(`[^a-z0-9]+`)
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FileInfo is what the naming convention <yyyy>-<mm>-week<n>-<slug>.<md|mdx>
// encodes about a post.
type FileInfo struct {
	Year      int
	Month     int
	MonthName string
	Week      int
	WeekLabel string
	Slug      string
}

// ParseFilename extracts the archive bucket and slug from a conventional file
// name. Names that do not follow the convention report false.
func ParseFilename(name string) (FileInfo, bool) {
	m := filenamePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return FileInfo{}, false
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return FileInfo{}, false
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return FileInfo{}, false
	}
	week, err := strconv.Atoi(m[3])
	if err != nil {
		return FileInfo{}, false
	}

	return FileInfo{
		Year:      year,
		Month:     month,
		MonthName: MonthName(month),
		Week:      week,
		WeekLabel: WeekLabel(week),
		Slug:      m[4],
	}, true
}

// MonthName maps 1..12 to the English month name. Anything else is "".
func MonthName(month int) string {
	if month < 1 || month > len(monthNames) {
		return ""
	}
	return monthNames[month-1]
}

func WeekLabel(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// IsContentFile reports whether name has a markdown extension.
func IsContentFile(name string) bool {
	return contentExt.MatchString(name)
}

// SlugFromFilename strips the convention prefix, if any, and the extension.
func SlugFromFilename(name string) string {
	base := filepath.Base(name)
	base = conventionPrefix.ReplaceAllString(base, "")
	return contentExt.ReplaceAllString(base, "")
}

// WeekOfMonth numbers the seven-day blocks of a month starting at 1.
func WeekOfMonth(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// FilenameFor builds the conventional file name for a post published on date.
func FilenameFor(date time.Time, slug, ext string) string {
	if ext == "" {
		ext = ".mdx"
	}
	return fmt.Sprintf("%04d-%02d-week%d-%s%s", date.Year(), int(date.Month()), WeekOfMonth(date), slug, ext)
}

// Slugify lower-cases title and joins its alphanumeric runs with dashes.
func Slugify(title string) string {
	s := slugUnsafe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// TitleFromSlug is the fallback title for files without one.
func TitleFromSlug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}
