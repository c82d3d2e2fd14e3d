package site

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	cfg := Load(func(k string) string {
		if k == "SITE_BASE_URL" {
			return "https://example.com/"
		}
		return ""
	})
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	b, err := Sitemap(cfg, []Page{
		{Slug: "hello", LastMod: time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), HasDate: true},
		{Slug: "undated"},
	}, now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "<?xml"))

	var set URLSet
	require.NoError(t, xml.Unmarshal(b, &set))
	require.Len(t, set.URLs, 6)
	assert.Equal(t, "https://example.com", set.URLs[0].Loc)
	assert.Equal(t, "https://example.com/meet", set.URLs[3].Loc)
	assert.Equal(t, "https://example.com/blog/hello", set.URLs[4].Loc)
	assert.Equal(t, "2026-01-16", set.URLs[4].LastMod)
	assert.Equal(t, "", set.URLs[5].LastMod)
}

func TestRobots(t *testing.T) {
	out := Robots(&Config{BaseURL: "https://example.com"})

	assert.Contains(t, out, "User-agent: *")
	assert.Contains(t, out, "Disallow: /api/admin/")
	assert.Contains(t, out, "Sitemap: https://example.com/sitemap.xml")
}
