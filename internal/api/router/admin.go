package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/portfolio/internal/admin"
	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
	"github.com/DjordjeVuckovic/portfolio/internal/auth"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/publish"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Message   string `json:"message"`
}

type PublishRequest struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AdminRouter struct {
	e         *echo.Echo
	auth      *auth.Authenticator
	blogs     *admin.BlogService
	photos    *admin.PhotoService
	projects  *admin.ProjectService
	publisher *publish.Publisher
}

func NewAdminRouter(
	e *echo.Echo,
	authenticator *auth.Authenticator,
	blogs *admin.BlogService,
	photos *admin.PhotoService,
	projects *admin.ProjectService,
	publisher *publish.Publisher,
) *AdminRouter {
	return &AdminRouter{
		e:         e,
		auth:      authenticator,
		blogs:     blogs,
		photos:    photos,
		projects:  projects,
		publisher: publisher,
	}
}

func (r *AdminRouter) Bind() {
	g := r.e.Group("/api/admin")
	g.POST("/auth", r.loginHandler)

	secured := g.Group("", r.auth.Middleware())
	secured.GET("/auth", r.verifyHandler)

	secured.GET("/blogs", r.listBlogsHandler)
	secured.POST("/blogs", r.saveBlogHandler)
	secured.DELETE("/blogs", r.deleteBlogHandler)

	secured.GET("/photos", r.listPhotosHandler)
	secured.POST("/photos", r.uploadPhotoHandler)
	secured.PUT("/photos", r.replacePhotosHandler)
	secured.DELETE("/photos", r.deletePhotoHandler)

	secured.GET("/projects", r.listProjectsHandler)
	secured.POST("/projects", r.saveProjectHandler)
	secured.DELETE("/projects", r.deleteProjectHandler)

	secured.POST("/publish", r.publishHandler)
	secured.GET("/publish/:id", r.publishStatusHandler)
}

// loginHandler godoc
// @Summary Admin login
// @Description Exchanges the admin password for a bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} map[string]string
// @Router /api/admin/auth [post]
func (r *AdminRouter) loginHandler(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	tok, err := r.auth.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return apperr.NewUnauthorized("Invalid password")
		}
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt.Format(time.RFC3339),
		Message:   "Authentication successful",
	})
}

// verifyHandler godoc
// @Summary Verify admin token
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Router /api/admin/auth [get]
func (r *AdminRouter) verifyHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true, "authenticated": true})
}

func (r *AdminRouter) listBlogsHandler(c echo.Context) error {
	posts, err := r.blogs.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// saveBlogHandler godoc
// @Summary Create or update a blog post
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.BlogPost true "Post"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/admin/blogs [post]
func (r *AdminRouter) saveBlogHandler(c echo.Context) error {
	var post domain.BlogPost
	if err := c.Bind(&post); err != nil {
		return apperr.NewValidationWrap("invalid blog", err)
	}

	saved, err := r.blogs.Save(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Blog saved successfully",
		"blog":    saved,
	})
}

func (r *AdminRouter) deleteBlogHandler(c echo.Context) error {
	if err := r.blogs.Delete(c.Request().Context(), c.QueryParam("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Blog deleted successfully"})
}

func (r *AdminRouter) listPhotosHandler(c echo.Context) error {
	photos, err := r.photos.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photos)
}

// uploadPhotoHandler godoc
// @Summary Upload a gallery photo
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Param title formData string false "Title"
// @Param category formData string false "Category"
// @Param description formData string false "Description"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/admin/photos [post]
func (r *AdminRouter) uploadPhotoHandler(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return apperr.NewValidation("No file provided")
		}
		return apperr.NewValidationWrap("invalid upload", err)
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.NewOperation("failed to upload photo", err)
	}
	defer f.Close()

	photo, err := r.photos.Upload(c.Request().Context(), admin.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
		Title:       c.FormValue("title"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Photo uploaded successfully",
		"photo":   photo,
	})
}

func (r *AdminRouter) replacePhotosHandler(c echo.Context) error {
	var photos []domain.Photo
	if err := c.Bind(&photos); err != nil {
		return apperr.NewValidationWrap("invalid gallery", err)
	}
	if err := r.photos.Replace(c.Request().Context(), photos); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Gallery updated successfully"})
}

func (r *AdminRouter) deletePhotoHandler(c echo.Context) error {
	if err := r.photos.Delete(c.Request().Context(), c.QueryParam("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Photo deleted successfully"})
}

func (r *AdminRouter) listProjectsHandler(c echo.Context) error {
	projects, err := r.projects.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

func (r *AdminRouter) saveProjectHandler(c echo.Context) error {
	var p domain.Project
	if err := c.Bind(&p); err != nil {
		return apperr.NewValidationWrap("invalid project", err)
	}

	saved, err := r.projects.Save(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Project saved successfully",
		"project": saved,
	})
}

func (r *AdminRouter) deleteProjectHandler(c echo.Context) error {
	if err := r.projects.Delete(c.Request().Context(), c.QueryParam("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Project deleted successfully"})
}

// publishHandler godoc
// @Summary Publish content
// @Description Queues git add, commit and push of the content repository
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PublishRequest false "Commit message"
// @Success 202 {object} publish.Job
// @Failure 503 {object} map[string]string
// @Router /api/admin/publish [post]
func (r *AdminRouter) publishHandler(c echo.Context) error {
	var req PublishRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	job, err := r.publisher.Enqueue(req.Message)
	if err != nil {
		if errors.Is(err, publish.ErrQueueFull) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Publish queue is full, try again later")
		}
		return err
	}
	return c.JSON(http.StatusAccepted, job)
}

// publishStatusHandler godoc
// @Summary Publish job status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job id"
// @Success 200 {object} publish.Job
// @Failure 404 {object} map[string]string
// @Router /api/admin/publish/{id} [get]
func (r *AdminRouter) publishStatusHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidation("invalid job id")
	}

	job, err := r.publisher.Job(id)
	if err != nil {
		if errors.Is(err, publish.ErrJobNotFound) {
			return apperr.NewNotFound("Publish job not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, job)
}
