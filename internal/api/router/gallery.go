package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/search"
)

type GalleryRouter struct {
	e      *echo.Echo
	photos search.Lister[domain.Photo]
}

func NewGalleryRouter(e *echo.Echo, photos search.Lister[domain.Photo]) *GalleryRouter {
	return &GalleryRouter{
		e:      e,
		photos: photos,
	}
}

func (r *GalleryRouter) Bind() {
	r.e.GET("/api/gallery", r.listHandler)
}

// listHandler godoc
// @Summary Gallery photos
// @Tags gallery
// @Produce json
// @Success 200 {array} domain.Photo
// @Router /api/gallery [get]
func (r *GalleryRouter) listHandler(c echo.Context) error {
	photos, err := r.photos.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photos)
}
