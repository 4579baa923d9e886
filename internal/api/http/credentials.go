package http

import (
	"context"
	"net/http"
	"strings"

	"proofflow-backend/internal/security"
)

const (
	AdminTokenHeader = "X-Admin-Token"

	adminQueryParam = "admin"
	tokenQueryParam = "t"
	bearerPrefix    = "Bearer "
)

type credentialKey struct{}

func withCredential(ctx context.Context, cred security.Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, cred)
}

// CredentialFrom returns the credential resolved by SecurityMiddleware, or
// no credential at all.
func CredentialFrom(ctx context.Context) security.Credential {
	if cred, ok := ctx.Value(credentialKey{}).(security.Credential); ok {
		return cred
	}
	return security.NoCredential()
}

// resolveCredential reads the admin token (query parameter first, then
// header) and falls back to a share bearer token. A wrong admin token is
// ignored, not rejected.
func resolveCredential(r *http.Request, adminToken string) security.Credential {
	presented := r.URL.Query().Get(adminQueryParam)
	if presented == "" {
		presented = r.Header.Get(AdminTokenHeader)
	}
	if security.AdminTokenMatches(presented, adminToken) {
		return security.AdminCredential()
	}
	return security.BearerCredential(bearerToken(r))
}

// bearerToken prefers the t query parameter so that <img> tags can carry
// the token, then the Authorization header.
func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get(tokenQueryParam); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > len(bearerPrefix) && strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(auth[len(bearerPrefix):])
	}
	return ""
}
