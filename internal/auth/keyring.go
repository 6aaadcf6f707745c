// Package auth keeps the backend session token in the system keyring.
package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	service = "flipplayer"
	user    = "session-token"
)

// SetToken persists the session token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(service, user, token)
}

// GetToken retrieves the session token from the system keyring.
func GetToken() (string, error) {
	return keyring.Get(service, user)
}

// DeleteToken removes the session token from the system keyring.
func DeleteToken() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Session is the signed-in state, read once from the keyring.
type Session struct {
	token string
}

// LoadSession reads the token. A missing token is a signed-out session,
// not an error.
func LoadSession() (*Session, error) {
	token, err := GetToken()
	if errors.Is(err, keyring.ErrNotFound) {
		return &Session{}, nil
	}
	if err != nil {
		return &Session{}, err
	}
	return &Session{token: token}, nil
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return s != nil && s.token != ""
}

// Token returns the bearer token, "" when signed out.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}
