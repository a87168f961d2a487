package middleware

import (
	"net/http"
	"strings"

	"storefront-be/internal/identity"
	"storefront-be/internal/user"

	"github.com/google/uuid"
)

// Identify resolves who the request acts as. A valid bearer token yields an
// authenticated identity; anything else falls back to an anonymous identity
// scoped by the X-Device-ID header. A missing device id gets one minted and
// echoed back so the client can keep using it.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := claimsFromRequest(r); claims != nil {
			if uid, err := uuid.Parse(claims.UserID); err == nil {
				id := identity.ForUser(uid, claims.Email, claims.Role)
				id.DeviceID = r.Header.Get("X-Device-ID")
				ctx := identity.WithIdentity(r.Context(), id)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		deviceID := r.Header.Get("X-Device-ID")
		if deviceID == "" {
			deviceID = uuid.New().String()
		}
		w.Header().Set("X-Device-ID", deviceID)

		ctx := identity.WithIdentity(r.Context(), identity.ForDevice(deviceID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromRequest(r *http.Request) *user.CustomClaims {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}

	claims, err := user.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil
	}
	return claims
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok || id.Anonymous() {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects everything but authenticated admins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok || !id.Admin() {
			http.Error(w, `{"error":"admin access required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
