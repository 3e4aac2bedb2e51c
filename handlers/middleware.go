package handlers

import (
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// RequireAdmin rejects unauthenticated requests. It is bound to the
// admin API group; the public quote-generation endpoint stays outside
// it. Sign-in itself (including the Google OAuth2 flow) is handled by
// the PocketBase auth collection, not by this codebase.
func RequireAdmin() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return apis.NewUnauthorizedError("Authentication required", nil)
		}
		return e.Next()
	}
}
