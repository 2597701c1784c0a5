// Package auth provides a high-level API for persisting and retrieving portal credentials from the system keyring.
package auth

import (
	"github.com/zalando/go-keyring"
)

const (
	service     = "hoopsgrab"
	emailKey    = "portal-email"
	passwordKey = "portal-password"
)

// SaveCredentials persists the portal email and password to the system keyring.
func SaveCredentials(email, password string) error {
	if err := keyring.Set(service, emailKey, email); err != nil {
		return err
	}
	return keyring.Set(service, passwordKey, password)
}

// Credentials retrieves the stored portal email and password from the system keyring.
func Credentials() (email, password string, err error) {
	email, err = keyring.Get(service, emailKey)
	if err != nil {
		return "", "", err
	}
	password, err = keyring.Get(service, passwordKey)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

// DeleteCredentials removes the stored portal credentials from the system keyring.
func DeleteCredentials() error {
	if err := keyring.Delete(service, emailKey); err != nil {
		return err
	}
	return keyring.Delete(service, passwordKey)
}
