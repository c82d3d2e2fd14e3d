package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/admin"
	"github.com/DjordjeVuckovic/portfolio/internal/auth"
	"github.com/DjordjeVuckovic/portfolio/internal/blob"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/publish"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/in_mem"
)

type okRunner struct{}

func (okRunner) Git(context.Context, ...string) (string, error) {
	return "", nil
}

type adminFixture struct {
	e          *echo.Echo
	contentDir string
	galleryDir string
	token      string
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	root := t.TempDir()
	contentDir := filepath.Join(root, "content", "blogs")
	galleryDir := filepath.Join(root, "public", "gallery")

	blobs, err := blob.NewLocalStore(galleryDir, blob.GalleryURLPrefix)
	require.NoError(t, err)

	store := in_mem.NewInMemStorer()
	authenticator := auth.NewAuthenticator(&auth.Config{Password: "secret", Secret: "jwt", TTL: time.Hour})
	publisher := publish.NewPublisher(okRunner{}, publish.Load(func(string) string { return "" }))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	publisher.Start(ctx)

	e := newEcho()
	NewAdminRouter(e,
		authenticator,
		admin.NewBlogService(store, contentDir),
		admin.NewPhotoService(store, blobs),
		admin.NewProjectService(store),
		publisher,
	).Bind()

	f := &adminFixture{e: e, contentDir: contentDir, galleryDir: galleryDir}

	rec := do(e, http.MethodPost, "/api/admin/auth", `{"password":"secret"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var login LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.True(t, login.Success)
	f.token = login.Token
	return f
}

func (f *adminFixture) authed(method, target, body string) *httptest.ResponseRecorder {
	return do(f.e, method, target, body, map[string]string{echo.HeaderAuthorization: "Bearer " + f.token})
}

func TestAdminRouter_Auth(t *testing.T) {
	f := newAdminFixture(t)

	rec := do(f.e, http.MethodPost, "/api/admin/auth", `{"password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid password"}`, rec.Body.String())

	rec = do(f.e, http.MethodGet, "/api/admin/auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, rec.Body.String())

	rec = do(f.e, http.MethodGet, "/api/admin/blogs", "", map[string]string{echo.HeaderAuthorization: "Bearer forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())

	rec = f.authed(http.MethodGet, "/api/admin/auth", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"authenticated":true}`, rec.Body.String())
}

func TestAdminRouter_Blogs(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.authed(http.MethodPost, "/api/admin/blogs", `{"id":1,"title":"Hello","date":"2026-01-16","content":"body"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"hello"`)

	_, err := os.Stat(filepath.Join(f.contentDir, "2026-01-week3-hello.mdx"))
	require.NoError(t, err)

	rec = f.authed(http.MethodGet, "/api/admin/blogs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []domain.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, domain.ID("1"), posts[0].ID)

	rec = f.authed(http.MethodPost, "/api/admin/blogs", `{"id":"2","title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.authed(http.MethodDelete, "/api/admin/blogs?id=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.authed(http.MethodDelete, "/api/admin/blogs?id=1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.authed(http.MethodDelete, "/api/admin/blogs", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRouter_Photos(t *testing.T) {
	f := newAdminFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "sunset.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("title", "Sunset"))
	require.NoError(t, mw.WriteField("category", "Travel"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/photos", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Photo domain.Photo `json:"photo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sunset", resp.Photo.Title)
	b, err := os.ReadFile(filepath.Join(f.galleryDir, resp.Photo.File))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(b))

	emptyForm := &bytes.Buffer{}
	ew := multipart.NewWriter(emptyForm)
	require.NoError(t, ew.WriteField("title", "nothing"))
	require.NoError(t, ew.Close())
	req = httptest.NewRequest(http.MethodPost, "/api/admin/photos", emptyForm)
	req.Header.Set(echo.HeaderContentType, ew.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token)
	rec = httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file provided")

	rec = f.authed(http.MethodDelete, "/api/admin/photos?id="+resp.Photo.ID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	_, err = os.Stat(filepath.Join(f.galleryDir, resp.Photo.File))
	assert.True(t, os.IsNotExist(err))

	rec = f.authed(http.MethodPut, "/api/admin/photos", `[{"id":"a","title":"A"},{"id":"b","title":"B"}]`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.authed(http.MethodGet, "/api/admin/photos", "")
	var photos []domain.Photo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &photos))
	assert.Len(t, photos, 2)
}

func TestAdminRouter_Projects(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.authed(http.MethodPost, "/api/admin/projects", `{"id":"cli","title":"CLI","category":"Go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.authed(http.MethodGet, "/api/admin/projects", "")
	assert.Contains(t, rec.Body.String(), `"id":"cli"`)

	rec = f.authed(http.MethodDelete, "/api/admin/projects?id=cli", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.authed(http.MethodDelete, "/api/admin/projects?id=cli", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRouter_Publish(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.authed(http.MethodPost, "/api/admin/publish", `{"message":"New post"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var job publish.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, "New post", job.Message)

	assert.Eventually(t, func() bool {
		rec := f.authed(http.MethodGet, "/api/admin/publish/"+job.ID.String(), "")
		var got publish.Job
		if rec.Code != http.StatusOK || json.Unmarshal(rec.Body.Bytes(), &got) != nil {
			return false
		}
		return got.Status == publish.StatusSucceeded
	}, 5*time.Second, 20*time.Millisecond)

	rec = f.authed(http.MethodGet, "/api/admin/publish/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = f.authed(http.MethodGet, "/api/admin/publish/00000000-0000-0000-0000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
