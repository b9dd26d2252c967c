package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/inventorypos/salesdesk/internal/types"
)

// RequestIDMiddleware stores the request, operator and counter ids on the
// request context. Missing operator and counter headers fall back to the
// single-counter defaults.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if operatorID := c.GetHeader(types.HeaderOperatorID); operatorID != "" {
		ctx = context.WithValue(ctx, types.CtxOperatorID, operatorID)
	}
	if counterID := c.GetHeader(types.HeaderCounterID); counterID != "" {
		ctx = context.WithValue(ctx, types.CtxCounterID, counterID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
