package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"

	"github.com/go-chi/render"
	"github.com/golang/glog"
)

type contextKey string

const identityKey contextKey = "currentUser"

// Identity is the authenticated caller of a request, decoded from its access token.
type Identity struct {
	UserID    string
	Email     string
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

func (i *Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// AuthCtx is a middleware that rejects requests without a valid bearer token. The Identity associated
// with the request is added to the request context, and can be accessed via GetIdentity.
//
// Every failure is a 401 with the same message, whatever the reason the token was refused.
func AuthCtx() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if header == "" || token == "" || token == header {
				rejectUnauthorizedRequest(w, r)
				return
			}

			claims, err := ParseToken(token)
			if err != nil {
				rejectUnauthorizedRequest(w, r)
				return
			}

			revoked, err := Revocations.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				// Fail open when the revocation store is unreachable.
				glog.Warningf("failed to check token revocation: %v", err)
			}
			if revoked {
				rejectUnauthorizedRequest(w, r)
				return
			}

			id := &Identity{
				UserID:  claims.UserID,
				Email:   claims.Email,
				Role:    claims.Role,
				TokenID: claims.ID,
			}
			if claims.ExpiresAt != nil {
				id.ExpiresAt = claims.ExpiresAt.Time
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole rejects requests whose caller does not have one of roles. Only works with routes
// that implement the AuthCtx middleware.
func RequireRole(roles ...models.Role) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := GetIdentity(r)
			if err != nil {
				rejectUnauthorizedRequest(w, r)
				return
			}

			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			rejectForbiddenRequest(w, r)
		})
	}
}

func RequireAdmin() func(handler http.Handler) http.Handler {
	return RequireRole(models.RoleAdmin)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the Identity if it exists within the request context.
func GetIdentity(r *http.Request) (*Identity, error) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	if !ok || id == nil {
		return nil, qerrors.MissingTokenError
	}
	return id, nil
}

// Helpers

func rejectUnauthorizedRequest(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"message": qerrors.MissingTokenError.Error()})
}

func rejectForbiddenRequest(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusForbidden)
	render.JSON(w, r, map[string]string{"message": qerrors.PermissionDeniedError.Error()})
}
