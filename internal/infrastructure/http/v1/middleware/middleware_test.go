package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminsuite/internal/core/apperror"
	appctx "adminsuite/internal/core/context"
	"adminsuite/pkg/logger"
)

type staticValidator struct{ user *appctx.UserContext }

func (v staticValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return v.user, nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Trace(), Logger(logger.Nop()), ErrorHandler(), Recovery())
	r.GET("/", append(handlers, func(c *gin.Context) { c.String(http.StatusOK, "ok") })...)
	return r
}

func serve(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Code
}

func TestRecovery(t *testing.T) {
	w := serve(newEngine(func(*gin.Context) { panic("boom") }), http.Header{HeaderRequestID: {"req-7"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "boom")

	var body struct {
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-7", body.Details["request_id"])
}

func TestTrace(t *testing.T) {
	w := serve(newEngine(), http.Header{HeaderRequestID: {"req-42"}})
	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(HeaderTraceID))

	w = serve(newEngine(), nil)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestAuthAndRoles(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1", Role: "MANAGER", Permissions: []string{"reports:export"}}
	v := staticValidator{user: user}
	bearer := func(tok string) http.Header { return http.Header{"Authorization": {"Bearer " + tok}} }

	tests := []struct {
		name   string
		chain  []gin.HandlerFunc
		header http.Header
		status int
	}{
		{"no header", []gin.HandlerFunc{Auth(v)}, nil, http.StatusUnauthorized},
		{"wrong scheme", []gin.HandlerFunc{Auth(v)}, http.Header{"Authorization": {"Basic good"}}, http.StatusUnauthorized},
		{"bad token", []gin.HandlerFunc{Auth(v)}, bearer("nope"), http.StatusUnauthorized},
		{"ok", []gin.HandlerFunc{Auth(v)}, bearer("good"), http.StatusOK},
		{"role allowed", []gin.HandlerFunc{Auth(v), RequireRole("ADMIN", "MANAGER")}, bearer("good"), http.StatusOK},
		{"role denied", []gin.HandlerFunc{Auth(v), RequireRole("ADMIN")}, bearer("good"), http.StatusForbidden},
		{"permission held", []gin.HandlerFunc{Auth(v), RequirePermission("reports:export")}, bearer("good"), http.StatusOK},
		{"permission missing", []gin.HandlerFunc{Auth(v), RequirePermission("users:write")}, bearer("good"), http.StatusForbidden},
		{"no principal", []gin.HandlerFunc{RequirePermission("users:read")}, nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newEngine(tt.chain...), tt.header)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequirePermission_AdminBypass(t *testing.T) {
	v := staticValidator{user: &appctx.UserContext{UserID: "a", Role: AdminRole}}
	w := serve(newEngine(Auth(v), RequirePermission("anything:at-all")), http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, w.Code)
}
