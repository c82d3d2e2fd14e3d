package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
	"github.com/DjordjeVuckovic/portfolio/internal/content"
	"github.com/DjordjeVuckovic/portfolio/internal/site"
)

type SiteRouter struct {
	e      *echo.Echo
	cfg    *site.Config
	reader *content.Reader
}

func NewSiteRouter(e *echo.Echo, cfg *site.Config, reader *content.Reader) *SiteRouter {
	return &SiteRouter{
		e:      e,
		cfg:    cfg,
		reader: reader,
	}
}

func (r *SiteRouter) Bind() {
	r.e.GET("/meet", r.meetHandler)
	r.e.GET("/sitemap.xml", r.sitemapHandler)
	r.e.GET("/robots.txt", r.robotsHandler)
}

func (r *SiteRouter) meetHandler(c echo.Context) error {
	if r.cfg.MeetURL == "" {
		return apperr.NewNotFound("Booking page is not configured")
	}
	return c.Redirect(http.StatusFound, r.cfg.MeetURL)
}

func (r *SiteRouter) sitemapHandler(c echo.Context) error {
	posts, err := r.reader.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	now := time.Now()
	posts = content.PublicPosts(posts, now)
	content.SortNewestFirst(posts)

	pages := make([]site.Page, 0, len(posts))
	for _, p := range posts {
		pages = append(pages, site.Page{Slug: p.Slug, LastMod: p.Date, HasDate: p.HasDate})
	}

	b, err := site.Sitemap(r.cfg, pages, now)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, b)
}

func (r *SiteRouter) robotsHandler(c echo.Context) error {
	return c.String(http.StatusOK, site.Robots(r.cfg))
}
