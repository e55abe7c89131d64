// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	userdom "nursery/internal/domain/user"
)

// FirebaseAuthClient は firebase auth クライアントのエイリアス。
type FirebaseAuthClient = fbauth.Client

// context key は string を使わず、衝突回避のため独自型を使用（SA1029 対策）
type ctxKey struct{ name string }

var (
	ctxKeyUID  = ctxKey{name: "uid"}
	ctxKeyRole = ctxKey{name: "role"}
	ctxKeyUser = ctxKey{name: "currentUser"}
)

// AuthMiddleware は
//
//   - Authorization: Bearer <ID_TOKEN>
//
// を検証し、uid と role（users/{uid} の profile から解決）を context に
// 詰めて次のハンドラへ渡す。
type AuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
	UserRepo     userdom.Repository
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if m.FirebaseAuth == nil || m.UserRepo == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		// uid → profile。profile がまだ無い場合は customer 扱い。
		role := userdom.RoleUser
		var current userdom.User
		if u, err := m.UserRepo.GetByUID(r.Context(), uid); err == nil {
			role = u.Role
			current = u
		} else {
			log.Printf("[auth] uid=%s: profile not readable, defaulting to user role: %v", uid, err)
			current = userdom.User{UID: uid, Role: role}
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		ctx = context.WithValue(ctx, ctxKeyRole, role)
		ctx = context.WithValue(ctx, ctxKeyUser, current)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUID returns the authenticated uid, "" when absent.
func CurrentUID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUID).(string); ok {
		return v
	}
	return ""
}

// CurrentRole returns the resolved role, defaulting to customer.
func CurrentRole(ctx context.Context) userdom.Role {
	if v, ok := ctx.Value(ctxKeyRole).(userdom.Role); ok {
		return v
	}
	return userdom.RoleUser
}

// CurrentUser returns the whole profile stashed by the middleware.
func CurrentUser(ctx context.Context) userdom.User {
	if v, ok := ctx.Value(ctxKeyUser).(userdom.User); ok {
		return v
	}
	return userdom.User{Role: userdom.RoleUser}
}

// RequireRole wraps a handler and rejects callers whose role is not
// in the allow list.
func RequireRole(next http.Handler, roles ...userdom.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := CurrentRole(r.Context())
		for _, want := range roles {
			if got == want {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	})
}
