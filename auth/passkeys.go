package auth

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/gorm"

	"github.com/D13garg/ucs503p-202526odd-alpha/database"
	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// adminAccount adapts a stored admin row to the webauthn user contract.
type adminAccount struct {
	rec   models.AdminUser
	creds []webauthn.Credential
}

func (a *adminAccount) WebAuthnID() []byte {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, uint64(a.rec.ID))
	return id
}

func (a *adminAccount) WebAuthnName() string        { return a.rec.Username }
func (a *adminAccount) WebAuthnDisplayName() string { return a.rec.Username }
func (a *adminAccount) WebAuthnIcon() string        { return "" }
func (a *adminAccount) WebAuthnCredentials() []webauthn.Credential {
	return a.creds
}

// Passkeys handles admin passkey registration and login. Registration
// requires an already-authenticated admin (password token); login issues a
// bearer token on a successful assertion.
type Passkeys struct {
	web      *webauthn.WebAuthn
	db       *database.DB
	tokens   *TokenStore
	sessions sync.Map // username -> *webauthn.SessionData
	log      *slog.Logger
}

func NewPasskeys(rpID string, origins []string, db *database.DB, tokens *TokenStore) (*Passkeys, error) {
	web, err := webauthn.New(&webauthn.Config{
		RPDisplayName: "Attendance Admin",
		RPID:          rpID,
		RPOrigins:     origins,
	})
	if err != nil {
		return nil, err
	}
	return &Passkeys{
		web:    web,
		db:     db,
		tokens: tokens,
		log:    slog.Default().With("component", "auth"),
	}, nil
}

func (p *Passkeys) loadAccount(username string) (*adminAccount, error) {
	rec, err := p.db.GetAdmin(username)
	if err != nil {
		return nil, err
	}
	creds, err := database.AdminCredentials(rec)
	if err != nil {
		return nil, err
	}
	return &adminAccount{rec: rec, creds: creds}, nil
}

func (p *Passkeys) BeginRegistration(c *gin.Context) {
	username := c.GetHeader("X-Admin-Username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Admin-Username header required"})
		return
	}

	account, err := p.loadAccount(username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rec, err := p.db.CreateAdmin(username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		account = &adminAccount{rec: rec}
	}

	options, session, err := p.web.BeginRegistration(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	p.sessions.Store("register:"+username, session)
	c.JSON(http.StatusOK, options)
}

func (p *Passkeys) FinishRegistration(c *gin.Context) {
	username := c.GetHeader("X-Admin-Username")
	raw, ok := p.sessions.Load("register:" + username)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "registration session not found"})
		return
	}
	session := raw.(*webauthn.SessionData)

	account, err := p.loadAccount(username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credential, err := p.web.FinishRegistration(account, *session, c.Request)
	if err != nil {
		p.log.Warn("passkey registration failed", "username", username, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.db.AddAdminCredential(username, credential); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	p.sessions.Delete("register:" + username)
	p.log.Info("admin passkey registered", "username", username)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (p *Passkeys) BeginLogin(c *gin.Context) {
	username := c.GetHeader("X-Admin-Username")
	account, err := p.loadAccount(username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown admin"})
		return
	}
	if len(account.creds) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no passkey registered"})
		return
	}

	options, session, err := p.web.BeginLogin(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	p.sessions.Store("login:"+username, session)
	c.JSON(http.StatusOK, options)
}

func (p *Passkeys) FinishLogin(c *gin.Context) {
	username := c.GetHeader("X-Admin-Username")
	raw, ok := p.sessions.Load("login:" + username)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login session not found"})
		return
	}
	session := raw.(*webauthn.SessionData)

	account, err := p.loadAccount(username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := p.web.FinishLogin(account, *session, c.Request); err != nil {
		p.log.Warn("passkey login failed", "username", username, "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	p.sessions.Delete("login:" + username)

	token := p.tokens.Grant()
	p.log.Info("admin passkey login", "username", username)
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}
