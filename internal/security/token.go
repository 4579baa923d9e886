package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"proofflow-backend/internal/domain"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

type TokenType string

// TokenTypeShare is the only token type this service issues. The claim exists
// so tokens minted for other purposes with the same secret are refused.
const TokenTypeShare TokenType = "share"

// ShareClaims binds a token to exactly one share record through Subject.
type ShareClaims struct {
	Type TokenType `json:"typ"`
	jwt.RegisteredClaims
}

type ShareTokenCodec interface {
	Issue(shareID string, ttl time.Duration) (string, time.Time, error)
	Verify(token string) (*domain.ShareSession, error)
}

type shareTokenCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

type CodecOption func(*shareTokenCodec)

// WithClock replaces the wall clock used for both issuing and verifying.
func WithClock(now func() time.Time) CodecOption {
	return func(c *shareTokenCodec) { c.now = now }
}

func NewShareTokenCodec(secret string, opts ...CodecOption) ShareTokenCodec {
	c := &shareTokenCodec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	return c
}

// Issue signs a share token valid for ttl. The returned expiry is the one
// embedded in the token, truncated to whole seconds.
func (c *shareTokenCodec) Issue(shareID string, ttl time.Duration) (string, time.Time, error) {
	if shareID == "" {
		return "", time.Time{}, ErrInvalidToken
	}

	now := c.now()
	expiresAt := jwt.NewNumericDate(now.Add(ttl))
	claims := ShareClaims{
		Type: TokenTypeShare,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shareID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt.Time, nil
}

func (c *shareTokenCodec) Verify(tokenString string) (*domain.ShareSession, error) {
	claims := &ShareClaims{}
	token, err := c.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != TokenTypeShare {
		return nil, ErrWrongTokenType
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &domain.ShareSession{
		ShareID:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
