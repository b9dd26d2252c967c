package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/sentry"
)

// ErrorHandler renders the last error attached to the gin context. Server
// side failures are logged and reported to Sentry.
func ErrorHandler(log *logger.Logger, sentryService *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"path", c.FullPath(),
				"status", status,
				"error", err,
			)
			sentryService.CaptureException(err)
		}

		c.JSON(status, ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Display: getDisplayMessage(err),
				Details: getSafeDetails(err),
			},
		})
	}
}

func getDisplayMessage(err error) string {
	// GetAllHints lists the innermost hint first; the outermost one was
	// added closest to the operator and wins
	hints := errors.GetAllHints(err)
	for i := len(hints) - 1; i >= 0; i-- {
		if hint := strings.TrimSpace(hints[i]); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

func getSafeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, "__json__:")
			if !ok || jsonStr == "" {
				continue
			}
			var jsonDetails map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &jsonDetails); err == nil {
				for k, v := range jsonDetails {
					details[k] = v
				}
			}
		}
	}

	return details
}
