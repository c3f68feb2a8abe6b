package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/kiranthorat/FractalProjectEcommerce/models"
	"gorm.io/gorm"
)

const (
	// SessionTokenLength matches the 10-char lowercase alphanumeric
	// tokens the frontend already stores.
	SessionTokenLength = 10

	// SessionTTL bounds how long a token stays valid without logout.
	SessionTTL = 24 * time.Hour
)

// ErrSessionExists is returned by StartSession when the user already
// has a live session. The stale session is revoked so the next login
// attempt succeeds.
var ErrSessionExists = errors.New("previous session exists")

const sessionTokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSessionToken returns a random token over [a-z0-9].
func GenerateSessionToken(length int) (string, error) {
	token := make([]byte, length)
	max := big.NewInt(int64(len(sessionTokenAlphabet)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = sessionTokenAlphabet[n.Int64()]
	}
	return string(token), nil
}

// StartSession creates the single live session for a user. At most one
// session per user is enforced by the unique index on sessions.user_id,
// so two concurrent logins cannot both create one.
func StartSession(db *gorm.DB, userID uint) (*models.Session, error) {
	now := time.Now()

	var existing models.Session
	err := db.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case err == nil:
		if !existing.Expired(now) {
			// Revoke the stale session; the caller reports the conflict.
			if err := db.Delete(&existing).Error; err != nil {
				return nil, err
			}
			return nil, ErrSessionExists
		}
		if err := db.Delete(&existing).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no live session
	default:
		return nil, err
	}

	token, err := GenerateSessionToken(SessionTokenLength)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// EndSession revokes all sessions for the user. Revoking a user with no
// session is a no-op, not an error.
func EndSession(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// ValidateSession confirms the token is the user's current live
// session. Fails closed when the user or session is missing, the token
// mismatches, or the session has expired. No side effects.
func ValidateSession(db *gorm.DB, userID uint, token string) (*models.User, bool) {
	var session models.Session
	if err := db.Where("user_id = ?", userID).First(&session).Error; err != nil {
		return nil, false
	}
	if session.Token != token || session.Expired(time.Now()) {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// PurgeExpiredSessions removes sessions past their expiry.
func PurgeExpiredSessions(db *gorm.DB) error {
	return db.Where("expires_at <= ?", time.Now()).Delete(&models.Session{}).Error
}
