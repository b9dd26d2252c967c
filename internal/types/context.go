package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxOperatorID    ContextKey = "ctx_operator_id"
	CtxCounterID     ContextKey = "ctx_counter_id"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	HeaderRequestID  = "X-Request-ID"
	HeaderOperatorID = "X-Operator-ID"
	HeaderCounterID  = "X-Counter-ID"

	// Default values
	DefaultOperatorID = "operator"
	DefaultCounterID  = "counter_1"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetOperatorID(ctx context.Context) string {
	if operatorID, ok := ctx.Value(CtxOperatorID).(string); ok {
		return operatorID
	}
	return DefaultOperatorID
}

func GetCounterID(ctx context.Context) string {
	if counterID, ok := ctx.Value(CtxCounterID).(string); ok {
		return counterID
	}
	return DefaultCounterID
}
