// Package access decides whether a request may see an image or use a share.
package access

import (
	"context"
	"errors"
	"time"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
	"proofflow-backend/internal/security"
)

// Reason records which check refused a request. It is logged, never returned
// to the caller.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonInvalidToken    Reason = "invalid_token"
	ReasonShareNotFound   Reason = "share_not_found"
	ReasonShareExpired    Reason = "share_expired"
	ReasonOutOfScope      Reason = "out_of_scope"
	ReasonWrongShare      Reason = "wrong_share"
)

// DeniedError unwraps to domain.ErrNotAuthenticated when no credential was
// presented and to domain.ErrNotFound for every other refusal.
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string {
	return "access denied: " + string(e.Reason)
}

func (e *DeniedError) Unwrap() error {
	if e.Reason == ReasonUnauthenticated {
		return domain.ErrNotAuthenticated
	}
	return domain.ErrNotFound
}

func deny(reason Reason) error {
	return &DeniedError{Reason: reason}
}

// Grant is a positive decision. Share is the record that allowed access and
// is nil when the admin credential was used.
type Grant struct {
	Admin bool
	Share *domain.ShareRecord
}

type Authorizer struct {
	shares repository.ShareRepository
	tokens security.ShareTokenCodec
	now    func() time.Time
}

type Option func(*Authorizer)

func WithClock(now func() time.Time) Option {
	return func(a *Authorizer) { a.now = now }
}

func NewAuthorizer(shares repository.ShareRepository, tokens security.ShareTokenCodec, opts ...Option) *Authorizer {
	a := &Authorizer{
		shares: shares,
		tokens: tokens,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ShareIsLive reports whether share can still be used at now. A share whose
// expiry is at or before now is dead.
func ShareIsLive(share *domain.ShareRecord, now time.Time) bool {
	if share == nil {
		return false
	}
	return share.ExpiresAt == nil || share.ExpiresAt.After(now)
}

// ShareExposes reports whether img falls inside the share's scope: the same
// album, and the same subfolder when the share is subfolder-scoped.
func ShareExposes(share *domain.ShareRecord, img *domain.Image) bool {
	if share == nil || img == nil {
		return false
	}
	if img.AlbumID != share.AlbumID {
		return false
	}
	if share.SubfolderID != nil && *share.SubfolderID != "" {
		return img.SubfolderID == *share.SubfolderID
	}
	return true
}

// LiveShare loads a share and fails with ErrNotFound unless it exists and has
// not expired. Store failures are passed through unchanged.
func (a *Authorizer) LiveShare(ctx context.Context, shareID string) (*domain.ShareRecord, error) {
	share, err := a.shares.GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, deny(ReasonShareNotFound)
		}
		return nil, err
	}
	if !ShareIsLive(share, a.now()) {
		return nil, deny(ReasonShareExpired)
	}
	return share, nil
}

// AuthorizeImage decides whether cred may fetch img.
func (a *Authorizer) AuthorizeImage(ctx context.Context, img *domain.Image, cred security.Credential) (*Grant, error) {
	switch cred.Kind {
	case security.CredentialAdmin:
		return &Grant{Admin: true}, nil
	case security.CredentialNone:
		return nil, a.denied(ctx, ReasonUnauthenticated, "image_id", img.ID)
	}

	session, err := a.tokens.Verify(cred.Token)
	if err != nil {
		return nil, a.denied(ctx, ReasonInvalidToken, "image_id", img.ID)
	}

	share, err := a.LiveShare(ctx, session.ShareID)
	if err != nil {
		var denied *DeniedError
		if errors.As(err, &denied) {
			return nil, a.denied(ctx, denied.Reason, "image_id", img.ID, "share_id", session.ShareID)
		}
		return nil, err
	}

	if !ShareExposes(share, img) {
		return nil, a.denied(ctx, ReasonOutOfScope, "image_id", img.ID, "share_id", share.ID)
	}
	return &Grant{Share: share}, nil
}

// AuthorizeShareSession checks that cred is a bearer token for exactly the
// share shareID and that the share is still live. The admin credential is
// not accepted here; admins list images through the admin API.
func (a *Authorizer) AuthorizeShareSession(ctx context.Context, shareID string, cred security.Credential) (*domain.ShareRecord, error) {
	if cred.Kind != security.CredentialBearer {
		return nil, a.denied(ctx, ReasonUnauthenticated, "share_id", shareID)
	}

	session, err := a.tokens.Verify(cred.Token)
	if err != nil {
		return nil, a.denied(ctx, ReasonInvalidToken, "share_id", shareID)
	}
	if session.ShareID != shareID {
		return nil, a.denied(ctx, ReasonWrongShare, "share_id", shareID)
	}

	share, err := a.LiveShare(ctx, shareID)
	if err != nil {
		var denied *DeniedError
		if errors.As(err, &denied) {
			return nil, a.denied(ctx, denied.Reason, "share_id", shareID)
		}
		return nil, err
	}
	return share, nil
}

func (a *Authorizer) denied(ctx context.Context, reason Reason, args ...any) error {
	logger.DebugContext(ctx, "access denied", append([]any{"reason", string(reason)}, args...)...)
	return deny(reason)
}
