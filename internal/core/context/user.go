// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains authenticated user information.
// Vendor is the user's home warehouse: the logical source for transfer
// withdrawals and the destination for repair shipments.
type UserContext struct {
	UserID  string
	Email   string
	Name    string
	Company string
	Phone   string
	Vendor  string
	IsAdmin bool
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetVendor returns the requesting user's home warehouse or empty string.
func GetVendor(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Vendor
	}
	return ""
}

// IsAdmin reports whether the context user may approve documents.
func IsAdmin(ctx context.Context) bool {
	u := GetUser(ctx)
	return u != nil && u.IsAdmin
}
