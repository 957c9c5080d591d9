package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

type Middleware struct {
	AuthClient *auth.Client
}

func NewMiddleware(client *auth.Client) *Middleware {
	return &Middleware{AuthClient: client}
}

type contextKey string

const (
	UIDKey  contextKey = "uid"
	NameKey contextKey = "name"
)

// FirebaseAuth verifies the bearer token and stores the caller's uid and
// display name in the request context.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UIDKey, token.UID)
		if name, ok := token.Claims["name"].(string); ok {
			ctx = context.WithValue(ctx, NameKey, name)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UID extracts the authenticated caller's uid.
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

// DisplayName extracts the caller's display name, empty if the token
// carried none.
func DisplayName(ctx context.Context) string {
	name, _ := ctx.Value(NameKey).(string)
	return name
}
