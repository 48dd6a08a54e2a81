package auth

import (
	"testing"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// The stored admin row must satisfy the webauthn user contract.
var _ webauthn.User = (*adminAccount)(nil)

func TestAdminAccountWebauthnIdentity(t *testing.T) {
	a := &adminAccount{rec: models.AdminUser{Username: "prof"}}
	a.rec.ID = 7

	assert.Equal(t, "prof", a.WebAuthnName())
	assert.Equal(t, "prof", a.WebAuthnDisplayName())
	assert.Empty(t, a.WebAuthnIcon())
	assert.Len(t, a.WebAuthnID(), 8)
	assert.Empty(t, a.WebAuthnCredentials())
}

func TestNewPasskeys(t *testing.T) {
	p, err := NewPasskeys("localhost", []string{"http://localhost:3000"}, nil, NewTokenStore("secret"))
	require.NoError(t, err)
	assert.NotNil(t, p)
}
