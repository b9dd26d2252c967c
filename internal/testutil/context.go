package testutil

import (
	"context"

	"github.com/inventorypos/salesdesk/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxOperatorID, "operator_test")
	ctx = context.WithValue(ctx, types.CtxCounterID, types.DefaultCounterID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
