package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"proofflow-backend/internal/access"
	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/service"
)

var (
	errShareNotFound = domain.NewError(domain.ErrNotFound, "Share not found")
	errNotAuthorized = domain.NewError(domain.ErrNotAuthenticated, "Not authorized")
)

// ShareHandler serves the public side of a share: its description, the
// password exchange and the listing behind the bearer token.
type ShareHandler struct {
	shareSvc service.ShareService
	authz    *access.Authorizer
}

func NewShareHandler(shareSvc service.ShareService, authz *access.Authorizer) *ShareHandler {
	return &ShareHandler{shareSvc: shareSvc, authz: authz}
}

func (h *ShareHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	scope, err := h.shareSvc.GetShareMeta(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scope)
}

func (h *ShareHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req shareAuthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, expiresAt, err := h.shareSvc.Authenticate(r.Context(), mux.Vars(r)["id"], req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ShareAuthResponse{Token: token, TokenExpiresAt: expiresAt})
}

func (h *ShareHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	share, err := h.authz.AuthorizeShareSession(ctx, mux.Vars(r)["id"], CredentialFrom(ctx))
	if err != nil {
		writeError(w, r, shareDenial(err))
		return
	}

	images, err := h.shareSvc.ListShareImages(ctx, share)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapImagesToResponse(images))
}

// shareDenial hides which check failed. Only a missing token is reported
// as such.
func shareDenial(err error) error {
	var denied *access.DeniedError
	if !errors.As(err, &denied) {
		return err
	}
	if denied.Reason == access.ReasonUnauthenticated {
		return errNotAuthorized
	}
	return errShareNotFound
}
