package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"convert_gateway_service/internal/api/handlers"
	authapp "convert_gateway_service/internal/auth/app"
	authdomain "convert_gateway_service/internal/auth/domain"
	converterapp "convert_gateway_service/internal/converter/app"
	errprocess "convert_gateway_service/pkg/err"
	"convert_gateway_service/pkg/logger"
	"convert_gateway_service/pkg/testtool"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinIO in-memory 物件儲存，記錄呼叫次數
type fakeMinIO struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string

	failPut bool
	puts    int
	removes int
}

func newFakeMinIO() *fakeMinIO {
	return &fakeMinIO{
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (f *fakeMinIO) PutObject(_ context.Context, objectName string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failPut {
		return errors.New("put rejected")
	}
	f.objects[objectName] = data
	f.contentTypes[objectName] = contentType
	return nil
}

func (f *fakeMinIO) GetObject(_ context.Context, objectName string) (io.ReadCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[objectName]
	if !ok {
		return nil, "", errprocess.New(errprocess.KindNotFound, "Object not found in storage.")
	}
	return io.NopCloser(bytes.NewReader(data)), f.contentTypes[objectName], nil
}

func (f *fakeMinIO) RemoveObject(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes++
	delete(f.objects, objectName)
	delete(f.contentTypes, objectName)
	return nil
}

func (f *fakeMinIO) ListObjects(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := []string{}
	for name := range f.objects {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeMinIO) BucketExists(_ context.Context) (bool, error) {
	return true, nil
}

// fakeRabbit 記錄發布的訊息
type fakeRabbit struct {
	mu        sync.Mutex
	published [][]byte
	fail      bool
}

func (f *fakeRabbit) Publish(_ context.Context, _, _ string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broker gone")
	}
	f.published = append(f.published, body)
	return nil
}

func (f *fakeRabbit) Close() error { return nil }

// newTestApp 以假的儲存 / broker 與真的 usecase 組一個 in-process gateway
func newTestApp(minio *fakeMinIO, rabbit *fakeRabbit, authURL string, downloadRequiresOwner bool) *fiber.App {
	authUseCase := authapp.NewAuthUseCase(authURL, 2*time.Second)
	converterUseCase := converterapp.NewConverterUseCase(minio, rabbit, "video.convert", "video.convert.upload")

	app := fiber.New()
	RegisterRoutes(app,
		handlers.NewAuthHandler(authUseCase),
		handlers.NewConverterHandler(converterUseCase, downloadRequiresOwner),
		authUseCase,
	)
	return app
}

// multipartBody 組一個單檔案的 multipart body
func multipartBody(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf, w.FormDataContentType()
}

func uploadRequest(t *testing.T, path, token, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	body, formContentType := multipartBody(t, filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", formContentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func detailOf(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Detail
}

// 測試 gateway HTTP 介面
func TestGatewayRoutes(t *testing.T) {
	logger.SetNewNop()

	authServer := testtool.NewMockAuthServer()
	defer authServer.Close()

	baseToken := authServer.AddUser("base-pw", authdomain.User{
		ID: "u-1", Email: "base@example.com", Username: "base", IsActive: true, Role: authdomain.RoleBaseUser,
	})
	adminToken := authServer.AddUser("admin-pw", authdomain.User{
		ID: "u-2", Email: "admin@example.com", Username: "admin", IsActive: true, Role: authdomain.RoleAdmin,
	})
	inactiveToken := authServer.AddUser("inactive-pw", authdomain.User{
		ID: "u-3", Email: "inactive@example.com", Username: "inactive", IsActive: false, Role: authdomain.RoleBaseUser,
	})

	t.Run("上傳成功回 204", func(t *testing.T) {
		minio := newFakeMinIO()
		rabbit := &fakeRabbit{}
		app := newTestApp(minio, rabbit, authServer.URL(), false)

		req := uploadRequest(t, "/v1/converter/upload", baseToken, "clip.mp4", "video/mp4", []byte("dummy video content"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		assert.Equal(t, 1, minio.puts)
		require.Len(t, rabbit.published, 1)

		var msg struct {
			FileName    string  `json:"file_name"`
			ContentType string  `json:"content_type"`
			ClientEmail *string `json:"client_email"`
		}
		require.NoError(t, json.Unmarshal(rabbit.published[0], &msg))
		assert.Equal(t, "clip.mp4", msg.FileName)
		assert.Equal(t, "video/mp4", msg.ContentType)
		assert.Nil(t, msg.ClientEmail)
	})

	t.Run("帶 email 的上傳變體", func(t *testing.T) {
		minio := newFakeMinIO()
		rabbit := &fakeRabbit{}
		app := newTestApp(minio, rabbit, authServer.URL(), false)

		req := uploadRequest(t, "/v1/converter/upload/client@example.com", baseToken, "clip.mp4", "video/mp4", []byte("x"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		var msg struct {
			ClientEmail *string `json:"client_email"`
		}
		require.NoError(t, json.Unmarshal(rabbit.published[0], &msg))
		require.NotNil(t, msg.ClientEmail)
		assert.Equal(t, "client@example.com", *msg.ClientEmail)
	})

	t.Run("非影片類型回 422 不碰外部系統", func(t *testing.T) {
		minio := newFakeMinIO()
		rabbit := &fakeRabbit{}
		app := newTestApp(minio, rabbit, authServer.URL(), false)

		req := uploadRequest(t, "/v1/converter/upload", baseToken, "photo.jpg", "image/jpeg", []byte("x"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		assert.Equal(t, 0, minio.puts)
		assert.Empty(t, rabbit.published)
	})

	t.Run("發布失敗回 500 並補償刪除", func(t *testing.T) {
		minio := newFakeMinIO()
		rabbit := &fakeRabbit{fail: true}
		app := newTestApp(minio, rabbit, authServer.URL(), false)

		req := uploadRequest(t, "/v1/converter/upload", baseToken, "clip.mp4", "video/mp4", []byte("x"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		assert.Equal(t, 1, minio.removes)
		assert.Empty(t, minio.objects)
	})

	t.Run("沒有 token 回 401", func(t *testing.T) {
		app := newTestApp(newFakeMinIO(), &fakeRabbit{}, authServer.URL(), false)

		req := uploadRequest(t, "/v1/converter/upload", "", "clip.mp4", "video/mp4", []byte("x"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("停用帳號回 403", func(t *testing.T) {
		app := newTestApp(newFakeMinIO(), &fakeRabbit{}, authServer.URL(), false)

		req := uploadRequest(t, "/v1/converter/upload", inactiveToken, "clip.mp4", "video/mp4", []byte("x"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Inactive user", detailOf(t, resp))
	})

	t.Run("下載回原始內容與 content type", func(t *testing.T) {
		minio := newFakeMinIO()
		minio.objects["clip.mp4"] = []byte("converted bytes")
		minio.contentTypes["clip.mp4"] = "video/mp4"
		app := newTestApp(minio, &fakeRabbit{}, authServer.URL(), false)

		req := httptest.NewRequest(http.MethodGet, "/v1/converter/download?file_name=clip.mp4", nil)
		req.Header.Set("Authorization", "Bearer "+baseToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("converted bytes"), data)
	})

	t.Run("下載不存在的 key 回 404", func(t *testing.T) {
		app := newTestApp(newFakeMinIO(), &fakeRabbit{}, authServer.URL(), false)

		req := httptest.NewRequest(http.MethodGet, "/v1/converter/download?file_name=missing.mp4", nil)
		req.Header.Set("Authorization", "Bearer "+baseToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("same-id 政策開啟時比對 user_id", func(t *testing.T) {
		minio := newFakeMinIO()
		minio.objects["clip.mp4"] = []byte("x")
		minio.contentTypes["clip.mp4"] = "video/mp4"
		admin2 := authServer.AddUser("pw", authdomain.User{
			ID: "u-9", Email: "other@example.com", Username: "other", IsActive: true, Role: authdomain.RoleAdmin,
		})
		app := newTestApp(minio, &fakeRabbit{}, authServer.URL(), true)

		// 本人放行
		req := httptest.NewRequest(http.MethodGet, "/v1/converter/download?file_name=clip.mp4&user_id=u-1", nil)
		req.Header.Set("Authorization", "Bearer "+baseToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		// 不是本人但角色在允許集合內也放行
		req = httptest.NewRequest(http.MethodGet, "/v1/converter/download?file_name=clip.mp4&user_id=u-1", nil)
		req.Header.Set("Authorization", "Bearer "+admin2)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode) // admin 不在下載角色集合
	})

	t.Run("list files 只給 admin", func(t *testing.T) {
		minio := newFakeMinIO()
		minio.objects["a.mp4"] = []byte("x")
		app := newTestApp(minio, &fakeRabbit{}, authServer.URL(), false)

		req := httptest.NewRequest(http.MethodGet, "/v1/converter/files", nil)
		req.Header.Set("Authorization", "Bearer "+baseToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		req = httptest.NewRequest(http.MethodGet, "/v1/converter/files", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var names []string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
		assert.Equal(t, []string{"a.mp4"}, names)
	})

	t.Run("sign-in 轉發 upstream detail", func(t *testing.T) {
		app := newTestApp(newFakeMinIO(), &fakeRabbit{}, authServer.URL(), false)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-in",
			strings.NewReader(`{"email":"base@example.com","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", detailOf(t, resp))
	})

	t.Run("sign-in 成功拿到 token", func(t *testing.T) {
		app := newTestApp(newFakeMinIO(), &fakeRabbit{}, authServer.URL(), false)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-in",
			strings.NewReader(`{"email":"base@example.com","password":"base-pw"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			AccessToken string `json:"access_token"`
			Expiration  string `json:"expiration"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.AccessToken)
		assert.NotEmpty(t, body.Expiration)
	})
}

// auth service 連不上時，保護路由回 503 而不是 401
func TestGatewayAuthServiceDown(t *testing.T) {
	logger.SetNewNop()

	authServer := testtool.NewMockAuthServer()
	url := authServer.URL()
	authServer.Close()

	app := newTestApp(newFakeMinIO(), &fakeRabbit{}, url, false)

	req := uploadRequest(t, "/v1/converter/upload", "some-token", "clip.mp4", "video/mp4", []byte("x"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
