package site

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type Config struct {
	BaseURL string
	MeetURL string
}

func LoadEnv() *Config {
	return Load(os.Getenv)
}

// Load reads SITE_BASE_URL and MEET_URL.
func Load(lookup func(string) string) *Config {
	base := strings.TrimSuffix(lookup("SITE_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &Config{
		BaseURL: base,
		MeetURL: lookup("MEET_URL"),
	}
}

type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Page is a post entry for the sitemap.
type Page struct {
	Slug    string
	LastMod time.Time
	HasDate bool
}

// Sitemap lists the fixed sections followed by every post.
func Sitemap(cfg *Config, posts []Page, now time.Time) ([]byte, error) {
	today := now.UTC().Format(time.DateOnly)
	set := URLSet{
		XMLNS: sitemapNS,
		URLs: []URL{
			{Loc: cfg.BaseURL, LastMod: today, ChangeFreq: "monthly", Priority: 1},
			{Loc: cfg.BaseURL + "/blog", LastMod: today, ChangeFreq: "weekly", Priority: 0.8},
			{Loc: cfg.BaseURL + "/gallery", LastMod: today, ChangeFreq: "weekly", Priority: 0.6},
			{Loc: cfg.BaseURL + "/meet", LastMod: today, ChangeFreq: "monthly", Priority: 0.5},
		},
	}
	for _, p := range posts {
		u := URL{Loc: cfg.BaseURL + "/blog/" + p.Slug, ChangeFreq: "monthly", Priority: 0.7}
		if p.HasDate {
			u.LastMod = p.LastMod.UTC().Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}

	b, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), b...), nil
}

func Robots(cfg *Config) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /private/\n")
	b.WriteString("Disallow: /api/admin/\n")
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", cfg.BaseURL)
	return b.String()
}
