package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adminsuite/internal/core/apperror"
	appctx "adminsuite/internal/core/context"
	"adminsuite/internal/core/idempotency"
	"adminsuite/pkg/logger"
)

const (
	HeaderIdempotencyKey = "X-Idempotency-Key"
	HeaderReplayed       = "X-Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
	maxIdempotentBody    = 1 << 20
)

// Idempotency replays the stored response of a keyed POST, PUT or PATCH
// instead of running it twice. Requests without a key pass through, as
// does everything when store is nil. Only 2xx responses are stored; any
// other outcome releases the key so the client can retry.
func Idempotency(store idempotency.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
		if store == nil || key == "" || !isWrite(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			_ = c.Error(apperror.NewInvalidInput(HeaderIdempotencyKey, key[:32]+"..."))
			c.Abort()
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIdempotentBody+1))
		if err != nil {
			_ = c.Error(apperror.NewValidation("cannot read request body").WithCause(err))
			c.Abort()
			return
		}
		if len(body) > maxIdempotentBody {
			_ = c.Error(apperror.NewValidation("request body too large for an idempotent request").
				WithDetail("limit_bytes", maxIdempotentBody))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		sum := sha256.Sum256(body)
		replay, err := store.Acquire(ctx, idempotency.Request{
			Key:       key,
			UserID:    appctx.GetUserID(ctx),
			Operation: c.Request.Method + " " + c.FullPath(),
			Hash:      hex.EncodeToString(sum[:]),
		})
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if replay != nil {
			c.Header(HeaderReplayed, "true")
			c.Data(replay.Status, replay.ContentType, replay.Body)
			c.Abort()
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		defer settle(c, store, key, rec)
		c.Next()
	}
}

// settle stores a 2xx response under key and releases the key otherwise.
// It also runs while a handler panic unwinds.
func settle(c *gin.Context, store idempotency.Store, key string, rec *recordingWriter) {
	ctx := c.Request.Context()
	// The client may be gone; the key must still settle.
	settleCtx := context.WithoutCancel(ctx)

	var err error
	status := rec.Status()
	if len(c.Errors) == 0 && rec.Written() && status >= 200 && status < 300 {
		err = store.Complete(settleCtx, key, idempotency.Replay{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}.Normalize())
	} else {
		err = store.Release(settleCtx, key)
	}
	if err != nil {
		logger.Warn(ctx, "failed to settle idempotency key", "key", key, "status", status, "error", err)
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// recordingWriter keeps a copy of the response body.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
