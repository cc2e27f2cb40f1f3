package middlewares

import (
	"booking-service/internal/app/services/shared/jwtmanager"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"
)

// OptionalBearer attaches the owner reference of a valid bearer token to the
// request context. Anonymous requests pass; a bad token is rejected.
func (m *Middlewares) OptionalBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present := bearerToken(r)
		if !present {
			next.ServeHTTP(w, r)
			return
		}

		ownerRef, err := m.verifyOwnerToken(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_OWNER_REF_KEY, ownerRef)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireBearer rejects requests without a valid owner token.
func (m *Middlewares) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := bearerToken(r); !present {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		m.OptionalBearer(next).ServeHTTP(w, r)
	})
}

func (m *Middlewares) verifyOwnerToken(ctx context.Context, token string) (string, error) {
	if m.JWTManager == nil {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	out, err := m.JWTManager.VerifyToken(ctx, &jwtmanager.VerifyTokenInput{Token: token})
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	if !out.Valid {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return out.Subject, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get(constvars.HeaderAuthorization))
	if header == "" {
		return "", false
	}
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", true
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
