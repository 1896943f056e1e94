package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edugrade-api/internal/middleware"
	appErrors "github.com/noah-isme/edugrade-api/pkg/errors"
)

// FingerprintHeader carries the snapshot fingerprint a report was computed from.
const FingerprintHeader = "X-Snapshot-Fingerprint"

// bindBody decodes a JSON body of at most maxBytes into dest.
func bindBody(c *gin.Context, maxBytes int64, dest interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return appErrors.Clone(appErrors.ErrValidation, "request body is required")
	}
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return appErrors.Wrap(err, appErrors.ErrPayloadTooLarge.Code, appErrors.ErrPayloadTooLarge.Status, appErrors.ErrPayloadTooLarge.Message)
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload")
	}
	return nil
}

// responseMeta returns the request meta map with cache and timing details filled in.
func responseMeta(c *gin.Context, start time.Time, cacheHit bool) map[string]interface{} {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	return meta
}

func setFingerprint(c *gin.Context, meta map[string]interface{}, fingerprint string) {
	if fingerprint == "" {
		return
	}
	c.Header(FingerprintHeader, fingerprint)
	if meta != nil {
		meta["fingerprint"] = fingerprint
	}
}
