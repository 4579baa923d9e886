package security

import "crypto/subtle"

type CredentialKind int

const (
	CredentialNone CredentialKind = iota
	CredentialAdmin
	CredentialBearer
)

func (k CredentialKind) String() string {
	switch k {
	case CredentialAdmin:
		return "admin"
	case CredentialBearer:
		return "bearer"
	default:
		return "none"
	}
}

// Credential is what a request proved about itself, resolved once at the
// transport boundary. Token is only set for CredentialBearer.
type Credential struct {
	Kind  CredentialKind
	Token string
}

func NoCredential() Credential { return Credential{Kind: CredentialNone} }

func AdminCredential() Credential { return Credential{Kind: CredentialAdmin} }

func BearerCredential(token string) Credential {
	if token == "" {
		return NoCredential()
	}
	return Credential{Kind: CredentialBearer, Token: token}
}

// AdminTokenMatches compares a presented admin token with the configured one.
// An empty configured token never matches.
func AdminTokenMatches(presented, configured string) bool {
	if presented == "" || configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
