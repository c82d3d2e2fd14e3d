package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
	"github.com/DjordjeVuckovic/portfolio/internal/archive"
	"github.com/DjordjeVuckovic/portfolio/internal/content"
)

type BlogSummary struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	ReadTime string   `json:"readTime"`
	Author   string   `json:"author,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type BlogPostResponse struct {
	BlogSummary
	HTML string `json:"html"`
}

type BlogRouter struct {
	e      *echo.Echo
	reader *content.Reader
	now    func() time.Time
}

func NewBlogRouter(e *echo.Echo, reader *content.Reader) *BlogRouter {
	return &BlogRouter{
		e:      e,
		reader: reader,
		now:    time.Now,
	}
}

func (r *BlogRouter) Bind() {
	r.e.GET("/api/blog", r.listHandler)
	r.e.GET("/api/blog/archive", r.archiveHandler)
	r.e.GET("/api/blog/:slug", r.postHandler)
}

// listHandler godoc
// @Summary List blog posts
// @Description Published posts from the content directory, newest first
// @Tags blog
// @Produce json
// @Success 200 {array} BlogSummary
// @Router /api/blog [get]
func (r *BlogRouter) listHandler(c echo.Context) error {
	posts, err := r.publicPosts(c)
	if err != nil {
		return err
	}
	content.SortNewestFirst(posts)

	out := make([]BlogSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summarize(p))
	}
	return c.JSON(http.StatusOK, out)
}

// archiveHandler godoc
// @Summary Blog archive
// @Description Posts grouped by year, month and week
// @Tags blog
// @Produce json
// @Success 200 {array} archive.YearArchive
// @Router /api/blog/archive [get]
func (r *BlogRouter) archiveHandler(c echo.Context) error {
	posts, err := r.publicPosts(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, archive.Build(archive.EntriesFromPosts(posts)))
}

// postHandler godoc
// @Summary Blog post
// @Description A single post with its body rendered to HTML
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} BlogPostResponse
// @Failure 404 {object} map[string]string
// @Router /api/blog/{slug} [get]
func (r *BlogRouter) postHandler(c echo.Context) error {
	post, ok, err := r.reader.PostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	if !ok || !post.Public(r.now()) {
		return apperr.NewNotFound("Blog not found")
	}

	html, err := content.RenderHTML(post.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, BlogPostResponse{
		BlogSummary: summarize(post),
		HTML:        html,
	})
}

func (r *BlogRouter) publicPosts(c echo.Context) ([]content.Post, error) {
	posts, err := r.reader.Posts(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return content.PublicPosts(posts, r.now()), nil
}

func summarize(p content.Post) BlogSummary {
	return BlogSummary{
		Slug:     p.Slug,
		Title:    p.Title,
		Excerpt:  p.Excerpt,
		Date:     p.DisplayDate(),
		Category: p.Category,
		ReadTime: p.ReadTime,
		Author:   p.Author,
		Tags:     p.Tags,
	}
}
