package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

type contextKey string

const UserIDKey contextKey = "userID"

// authErrorMessages maps well-known auth error codes to messages fit for
// showing a person. Unknown codes fall through to a generic line.
var authErrorMessages = map[string]string{
	"auth/invalid-email":        "The email address is not valid.",
	"auth/user-disabled":        "This account has been disabled.",
	"auth/user-not-found":       "No account exists for this email.",
	"auth/wrong-password":       "The password is incorrect.",
	"auth/email-already-in-use": "An account already exists for this email.",
	"auth/weak-password":        "The password is too weak. Use at least 6 characters.",
	"auth/id-token-expired":     "Your session has expired. Please sign in again.",
	"auth/id-token-revoked":     "Your session was revoked. Please sign in again.",
}

// AuthErrorMessage translates an auth error code into a human-readable
// message.
func AuthErrorMessage(code string) string {
	if msg, ok := authErrorMessages[code]; ok {
		return msg
	}
	return "Authentication failed. Please try again."
}

// FirebaseAuth validates Firebase ID tokens and puts the verified user id on
// the request context. A nil client means auth was never configured; every
// protected request then gets a 503 instead of a misleading 401.
type FirebaseAuth struct {
	client *auth.Client
}

func NewFirebaseAuth(client *auth.Client) *FirebaseAuth {
	return &FirebaseAuth{client: client}
}

func (a *FirebaseAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.client == nil {
			respondWithError(w, http.StatusServiceUnavailable, "Authentication is not configured")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization format. Use 'Bearer <token>'")
			return
		}

		verified, err := a.client.VerifyIDToken(r.Context(), token)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			if auth.IsIDTokenExpired(err) {
				respondWithError(w, http.StatusUnauthorized, AuthErrorMessage("auth/id-token-expired"))
				return
			}
			if auth.IsIDTokenRevoked(err) {
				respondWithError(w, http.StatusUnauthorized, AuthErrorMessage("auth/id-token-revoked"))
				return
			}
			respondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, verified.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the verified user id from context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, message)))
}
