// Package http provides HTTP handlers and authentication middleware for businesses.
package http

import (
	"context"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
)

// businessKey is a context key type for storing the authenticated business.
type businessKey struct{}

// WithBusiness stores the authenticated business in the context.
func WithBusiness(ctx context.Context, business *businessDomain.Business) context.Context {
	return context.WithValue(ctx, businessKey{}, business)
}

// GetBusiness retrieves the authenticated business from the context.
func GetBusiness(ctx context.Context) (*businessDomain.Business, bool) {
	business, ok := ctx.Value(businessKey{}).(*businessDomain.Business)
	return business, ok
}
