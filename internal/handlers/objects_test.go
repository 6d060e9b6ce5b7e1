package handlers_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/serroba/qrshare/internal/mocks"
	"github.com/serroba/qrshare/internal/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const maxUpload = 10 << 20

func newGatewayServer(t *testing.T, password string) (*testServer, *mocks.MockObjectGateway) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockObjectGateway(ctrl)
	gateway.EXPECT().MaxUploadSize().Return(int64(maxUpload)).AnyTimes()

	return newTestServer(t, serverOptions{gateway: gateway, password: password}), gateway
}

func authHeader() string {
	return "x-access-password: " + testPassword
}

func TestPresign_Verify(t *testing.T) {
	t.Run("ok with the right password and no side effects", func(t *testing.T) {
		srv, _ := newGatewayServer(t, testPassword)

		resp := srv.api.Post("/api/r2/presign", authHeader(), map[string]any{"action": "verify", "key": "x"})

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
		assert.Empty(t, srv.events.uploads)
	})

	t.Run("401 with a wrong password", func(t *testing.T) {
		srv, _ := newGatewayServer(t, testPassword)

		resp := srv.api.Post("/api/r2/presign", "x-access-password: wrong", map[string]any{"action": "verify", "key": "x"})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.JSONEq(t, `{"message":"Unauthorized: Invalid Password"}`, resp.Body.String())
	})

	t.Run("ok without password when none is configured", func(t *testing.T) {
		srv, _ := newGatewayServer(t, "")

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "verify", "key": "x"})

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestPresign_Put(t *testing.T) {
	t.Run("issues an upload url under a timestamp key", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, testPassword)
		gateway.EXPECT().
			IssuePutURL(gomock.Any(), "1767323045006.png", "image/png", int64(2048)).
			Return("https://signed.example/put", nil)

		resp := srv.api.Post("/api/r2/presign", authHeader(), map[string]any{
			"action": "put", "key": "holiday.photo.png", "contentType": "image/png", "size": 2048, "extra": 1,
		})

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.JSONEq(t, `{"url":"https://signed.example/put","key":"1767323045006.png"}`, resp.Body.String())
		require.Len(t, srv.events.uploads, 1)
		assert.Equal(t, "put", srv.events.uploads[0].Action)
		assert.Equal(t, int64(2048), srv.events.uploads[0].Size)
	})

	t.Run("keys without an extension stay bare", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, "")
		gateway.EXPECT().IssuePutURL(gomock.Any(), "1767323045006", "", int64(1)).Return("u", nil)

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "put", "key": "README", "size": 1})

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("accepts a size equal to the limit", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, "")
		gateway.EXPECT().IssuePutURL(gomock.Any(), gomock.Any(), gomock.Any(), int64(maxUpload)).Return("u", nil)

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "put", "key": "a.bin", "size": maxUpload})

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("rejects a size one byte over the limit", func(t *testing.T) {
		srv, _ := newGatewayServer(t, "")

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "put", "key": "a.bin", "size": maxUpload + 1})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"message":"File size exceeds limit of 10MB"}`, resp.Body.String())
	})

	for name, size := range map[string]any{"missing": nil, "zero": 0, "negative": -5} {
		t.Run("rejects "+name+" size", func(t *testing.T) {
			srv, _ := newGatewayServer(t, "")
			body := map[string]any{"action": "put", "key": "a.bin"}

			if size != nil {
				body["size"] = size
			}

			resp := srv.api.Post("/api/r2/presign", body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.JSONEq(t, `{"message":"File size is required for upload"}`, resp.Body.String())
		})
	}

	t.Run("requires the password", func(t *testing.T) {
		srv, _ := newGatewayServer(t, testPassword)

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "put", "key": "a.bin", "size": 1})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("gateway failure is 500", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, "")
		gateway.EXPECT().IssuePutURL(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", objectstore.ErrNotConfigured)

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "put", "key": "a.bin", "size": 1})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"message":"Internal server error"}`, resp.Body.String())
	})
}

func TestPresign_Get(t *testing.T) {
	t.Run("is public even when a password is configured", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, testPassword)
		gateway.EXPECT().IssueGetURL(gomock.Any(), "1767323045006.png").
			Return("https://files.example.com/1767323045006.png", nil)

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "get", "key": "1767323045006.png"})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t,
			`{"url":"https://files.example.com/1767323045006.png","key":"1767323045006.png"}`,
			resp.Body.String())
	})

	t.Run("gateway failure is 500", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, "")
		gateway.EXPECT().IssueGetURL(gomock.Any(), "k").Return("", errors.New("boom"))

		resp := srv.api.Post("/api/r2/presign", map[string]any{"action": "get", "key": "k"})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

func TestPresign_Validation(t *testing.T) {
	for name, body := range map[string]map[string]any{
		"unknown action": {"action": "delete", "key": "k"},
		"empty key":      {"action": "get", "key": ""},
		"missing key":    {"action": "get"},
		"missing action": {"key": "k"},
		"string size":    {"action": "put", "key": "k", "size": "big"},
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := newGatewayServer(t, testPassword)

			resp := srv.api.Post("/api/r2/presign", authHeader(), body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Body.String(), `"message":"Invalid parameters"`)
		})
	}

	t.Run("schema errors win over a wrong password", func(t *testing.T) {
		srv, _ := newGatewayServer(t, testPassword)

		resp := srv.api.Post("/api/r2/presign", "x-access-password: wrong", map[string]any{"action": "nope", "key": "k"})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("other methods are 405", func(t *testing.T) {
		srv, _ := newGatewayServer(t, "")

		assert.Equal(t, http.StatusMethodNotAllowed, srv.api.Get("/api/r2/presign").Code)
	})
}

func TestDownload(t *testing.T) {
	t.Run("streams the object as an attachment", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, "")
		gateway.EXPECT().StreamObject(gomock.Any(), "dir/my file.txt").Return(&objectstore.Object{
			Key:           "dir/my file.txt",
			ContentType:   "text/plain",
			ContentLength: 5,
			Body:          io.NopCloser(strings.NewReader("hello")),
		}, nil)

		resp := srv.api.Get("/api/r2/download?key=dir%2Fmy%20file.txt")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "hello", resp.Body.String())
		assert.Equal(t, "text/plain", resp.Header().Get("Content-Type"))
		assert.Equal(t, "5", resp.Header().Get("Content-Length"))
		assert.Equal(t, `attachment; filename="my%20file.txt"`, resp.Header().Get("Content-Disposition"))
	})

	t.Run("missing object is 404", func(t *testing.T) {
		srv, gateway := newGatewayServer(t, "")
		gateway.EXPECT().StreamObject(gomock.Any(), "gone").Return(nil, objectstore.ErrNotFound)

		resp := srv.api.Get("/api/r2/download?key=gone")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"message":"File not found"}`, resp.Body.String())
	})

	t.Run("missing key is 400", func(t *testing.T) {
		srv, _ := newGatewayServer(t, "")

		assert.Equal(t, http.StatusBadRequest, srv.api.Get("/api/r2/download").Code)
	})
}

func TestQR(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	pngMagic := []byte("\x89PNG\r\n\x1a\n")

	t.Run("renders a png", func(t *testing.T) {
		resp := srv.api.Get("/api/qr?content=https%3A%2F%2Fexample.com&size=128&level=high")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), pngMagic))
	})

	t.Run("applies defaults", func(t *testing.T) {
		resp := srv.api.Get("/api/qr?content=hello")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), pngMagic))
	})

	for name, query := range map[string]string{
		"size too small":  "content=x&size=64",
		"size too large":  "content=x&size=2048",
		"unknown level":   "content=x&level=max",
		"missing content": "size=256",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, srv.api.Get("/api/qr?"+query).Code)
		})
	}

	t.Run("content over capacity for the level", func(t *testing.T) {
		resp := srv.api.Get("/api/qr?level=highest&content=" + strings.Repeat("a", 2000))

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "Content too long")
	})
}
