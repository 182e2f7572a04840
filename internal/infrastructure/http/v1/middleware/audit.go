package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appctx "ledgerpro/internal/core/context"
	"ledgerpro/internal/domain/audit"
)

var auditActions = map[string]string{
	http.MethodPost:   "create",
	http.MethodPut:    "update",
	http.MethodPatch:  "update",
	http.MethodDelete: "delete",
}

// Audit records every successful mutating request in the audit trail.
// Failures to write the trail are logged by the audit service and never
// fail the request.
func Audit(svc *audit.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		action, ok := auditActions[c.Request.Method]
		if !ok || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		uc := appctx.GetUser(c.Request.Context())
		if uc == nil {
			return
		}

		resource, resourceID := splitResource(c.FullPath(), c.Param("id"))
		_ = svc.Log(c.Request.Context(), uc.UserID, action, resource, resourceID, map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})
	}
}

// splitResource derives the resource name from the route path, e.g.
// "/api/v1/transactions/:id/payments" becomes "transactions".
func splitResource(route, id string) (string, string) {
	parts := strings.Split(strings.TrimPrefix(route, "/api/v1/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "unknown", id
	}
	return parts[0], id
}
