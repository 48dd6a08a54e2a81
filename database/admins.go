package database

import (
	"encoding/json"
	"fmt"

	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/datatypes"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// GetAdmin loads an admin account by username. Returns gorm.ErrRecordNotFound
// when the account does not exist.
func (d *DB) GetAdmin(username string) (models.AdminUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var admin models.AdminUser
	err := d.gorm.Where("username = ?", username).First(&admin).Error
	return admin, err
}

func (d *DB) CreateAdmin(username string) (models.AdminUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	admin := models.AdminUser{Username: username}
	if err := d.gorm.Create(&admin).Error; err != nil {
		return admin, err
	}
	return admin, nil
}

// AdminCredentials decodes the account's stored passkey credentials.
func AdminCredentials(admin models.AdminUser) ([]webauthn.Credential, error) {
	if len(admin.Credentials) == 0 {
		return nil, nil
	}
	var creds []webauthn.Credential
	if err := json.Unmarshal(admin.Credentials, &creds); err != nil {
		return nil, fmt.Errorf("decoding credentials for %s: %w", admin.Username, err)
	}
	return creds, nil
}

// AddAdminCredential appends a freshly registered passkey to the account.
func (d *DB) AddAdminCredential(username string, credential *webauthn.Credential) error {
	admin, err := d.GetAdmin(username)
	if err != nil {
		return err
	}
	creds, err := AdminCredentials(admin)
	if err != nil {
		return err
	}
	creds = append(creds, *credential)

	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	admin.Credentials = datatypes.JSON(raw)
	return d.gorm.Save(&admin).Error
}
