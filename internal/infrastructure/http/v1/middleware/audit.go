package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atlas/internal/domain/audit"
)

// maxAuditBody caps how much of a request body lands in the audit log.
const maxAuditBody = 256 * 1024

// OperationKey names the human-readable operation a route can set for
// its audit entries.
const OperationKey = "audit_operation"

// Audit records every mutating request. The entry is written after the
// handler so it carries the final status; recording failures never fail
// the request.
func Audit(svc *audit.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxAuditBody))
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := &audit.Entry{
			Method:     c.Request.Method,
			Path:       c.FullPath(),
			Operation:  c.GetString(OperationKey),
			Target:     c.Param("id"),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			StatusCode: status,
			Success:    status < http.StatusBadRequest,
			LatencyMS:  time.Since(start).Milliseconds(),
		}
		if entry.Path == "" {
			entry.Path = c.Request.URL.Path
		}
		if entry.Operation == "" {
			entry.Operation = c.Request.Method + " " + entry.Path
		}
		if len(body) > 0 && json.Valid(body) && !sensitivePath(entry.Path) {
			entry.Params = json.RawMessage(body)
		}
		if len(c.Errors) > 0 {
			entry.ErrorMsg = c.Errors.Last().Error()
		}

		svc.Record(c.Request.Context(), entry)
	}
}

// sensitivePath reports whether the request body may carry credentials.
func sensitivePath(path string) bool {
	switch path {
	case "/api/v1/auth/login", "/api/v1/auth/register", "/api/v1/auth/refresh":
		return true
	}
	return false
}
