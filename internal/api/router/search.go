package router

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/portfolio/internal/search"
)

type Searcher interface {
	Search(ctx context.Context, query string) []search.Result
}

type SearchResponse struct {
	Results []search.Result `json:"results"`
	Query   string          `json:"query"`
	Count   int             `json:"count"`
}

type SearchRouter struct {
	e        *echo.Echo
	searcher Searcher
}

func NewSearchRouter(e *echo.Echo, searcher Searcher) *SearchRouter {
	return &SearchRouter{
		e:        e,
		searcher: searcher,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/api/search", r.searchHandler)
}

// searchHandler godoc
// @Summary Site-wide search
// @Description Scores blogs, photos and projects against q and returns the best matches
// @Tags search
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} SearchResponse
// @Router /api/search [get]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")

	results := r.searcher.Search(c.Request().Context(), query)

	return c.JSON(http.StatusOK, SearchResponse{
		Results: results,
		Query:   query,
		Count:   len(results),
	})
}
