package archive

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/portfolio/internal/content"
)

// Entry is one post placed in the archive by its file name.
type Entry struct {
	Year  int
	Month int
	Week  int
	Slug  string
	Title string
}

type WeekPost struct {
	Week  string `json:"week"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type MonthArchive struct {
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`
	Weeks []WeekPost `json:"weeks"`
}

type YearArchive struct {
	Year   string         `json:"year"`
	Months []MonthArchive `json:"months"`
}

type monthBucket struct {
	month int
	weeks map[int][]Entry
}

// invalidMonth collects every month number outside 1..12 into one bucket.
const invalidMonth = 0

// Build groups entries by year, month and week. Years and weeks are ordered
// descending numerically, months descending by calendar order. All unknown
// months share a single unnamed bucket placed last. Posts within a week keep
// their input order.
func Build(entries []Entry) []YearArchive {
	years := make(map[int]map[int]*monthBucket)
	for _, e := range entries {
		months, ok := years[e.Year]
		if !ok {
			months = make(map[int]*monthBucket)
			years[e.Year] = months
		}
		month := e.Month
		if !validMonth(month) {
			month = invalidMonth
		}
		b, ok := months[month]
		if !ok {
			b = &monthBucket{month: month, weeks: make(map[int][]Entry)}
			months[month] = b
		}
		b.weeks[e.Week] = append(b.weeks[e.Week], e)
	}

	out := make([]YearArchive, 0, len(years))
	for _, year := range sortedDesc(keys(years)) {
		months := years[year]

		monthNums := keys(months)
		sort.Slice(monthNums, func(i, j int) bool {
			vi, vj := validMonth(monthNums[i]), validMonth(monthNums[j])
			if vi != vj {
				return vi
			}
			return monthNums[i] > monthNums[j]
		})

		ya := YearArchive{Year: fmt.Sprintf("%04d", year), Months: make([]MonthArchive, 0, len(monthNums))}
		for _, m := range monthNums {
			b := months[m]
			name := content.MonthName(m)
			ma := MonthArchive{Name: name, Slug: strings.ToLower(name), Weeks: []WeekPost{}}
			for _, w := range sortedDesc(keys(b.weeks)) {
				for _, e := range b.weeks[w] {
					ma.Weeks = append(ma.Weeks, WeekPost{
						Week:  content.WeekLabel(w),
						Slug:  e.Slug,
						Title: e.Title,
					})
				}
			}
			ya.Months = append(ya.Months, ma)
		}
		out = append(out, ya)
	}
	return out
}

// EntriesFromPosts keeps only posts whose file name follows the archive
// naming convention.
func EntriesFromPosts(posts []content.Post) []Entry {
	entries := make([]Entry, 0, len(posts))
	for _, p := range posts {
		info, ok := content.ParseFilename(p.Filename)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Year:  info.Year,
			Month: info.Month,
			Week:  info.Week,
			Slug:  info.Slug,
			Title: p.Title,
		})
	}
	return entries
}

// Load reads the content directory and builds its archive.
func Load(ctx context.Context, r *content.Reader) ([]YearArchive, error) {
	posts, err := r.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return Build(EntriesFromPosts(posts)), nil
}

func validMonth(m int) bool {
	return content.MonthName(m) != ""
}

func keys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortedDesc(s []int) []int {
	sort.Sort(sort.Reverse(sort.IntSlice(s)))
	return s
}
