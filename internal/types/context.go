package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxTenantID  ContextKey = "ctx_tenant_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxUserRole  ContextKey = "ctx_user_role"
	CtxScope     ContextKey = "ctx_scope"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(CtxTenantID).(string); ok {
		return tenantID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetUserRole(ctx context.Context) UserRole {
	if role, ok := ctx.Value(CtxUserRole).(UserRole); ok {
		return role
	}
	return ""
}

// SetTenantID sets the tenant ID in the context
func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// SetScope stores the resolved tenant scope along with its tenant and user ids
func SetScope(ctx context.Context, scope TenantScope) context.Context {
	ctx = context.WithValue(ctx, CtxScope, scope)
	ctx = context.WithValue(ctx, CtxTenantID, scope.TenantID)
	ctx = context.WithValue(ctx, CtxUserID, scope.UserID)
	return context.WithValue(ctx, CtxUserRole, scope.Role)
}

// GetScope returns the scope set by the tenant middleware
func GetScope(ctx context.Context) (TenantScope, bool) {
	scope, ok := ctx.Value(CtxScope).(TenantScope)
	return scope, ok
}
