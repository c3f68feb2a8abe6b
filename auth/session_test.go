package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kiranthorat/FractalProjectEcommerce/models"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestGenerateSessionToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := GenerateSessionToken(SessionTokenLength)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(token) != SessionTokenLength {
			t.Fatalf("token length = %d, want %d", len(token), SessionTokenLength)
		}
		for _, r := range token {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
				t.Fatalf("token %q has char outside [a-z0-9]", token)
			}
		}
		seen[token] = true
	}
	if len(seen) < 2 {
		t.Fatal("tokens are not random")
	}
}

func TestStartSessionConflict(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "u@example.com")

	first, err := StartSession(db, user.ID)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	// Second login hits the live session: it is revoked and reported.
	_, err = StartSession(db, user.ID)
	if !errors.Is(err, ErrSessionExists) {
		t.Fatalf("err = %v, want ErrSessionExists", err)
	}
	if _, ok := ValidateSession(db, user.ID, first.Token); ok {
		t.Fatal("revoked session still validates")
	}

	// Third attempt succeeds.
	second, err := StartSession(db, user.ID)
	if err != nil {
		t.Fatalf("retry login: %v", err)
	}
	if _, ok := ValidateSession(db, user.ID, second.Token); !ok {
		t.Fatal("fresh session does not validate")
	}
}

func TestValidateSessionFailsClosed(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "u@example.com")

	if _, ok := ValidateSession(db, user.ID, "whatever"); ok {
		t.Fatal("validated with no session")
	}

	session, err := StartSession(db, user.ID)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := ValidateSession(db, user.ID, "wrong"+session.Token[5:]); ok {
		t.Fatal("validated with wrong token")
	}
	if _, ok := ValidateSession(db, user.ID+1, session.Token); ok {
		t.Fatal("validated unknown user")
	}
	got, ok := ValidateSession(db, user.ID, session.Token)
	if !ok || got.ID != user.ID {
		t.Fatalf("valid session rejected: ok=%v", ok)
	}
}

func TestSessionExpiry(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "u@example.com")

	expired := models.Session{
		Token:     "expiredtok",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if _, ok := ValidateSession(db, user.ID, expired.Token); ok {
		t.Fatal("expired session validates")
	}

	// An expired session does not block a new login.
	session, err := StartSession(db, user.ID)
	if err != nil {
		t.Fatalf("login over expired session: %v", err)
	}
	if _, ok := ValidateSession(db, user.ID, session.Token); !ok {
		t.Fatal("fresh session does not validate")
	}
}

func TestEndSessionAndPurge(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "u@example.com")

	session, err := StartSession(db, user.ID)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := EndSession(db, user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := ValidateSession(db, user.ID, session.Token); ok {
		t.Fatal("session survives logout")
	}
	// Logout with nothing live is a no-op.
	if err := EndSession(db, user.ID); err != nil {
		t.Fatalf("repeat logout: %v", err)
	}

	other := seedUser(t, db, "o@example.com")
	db.Create(&models.Session{Token: "stalepurge", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Hour)})
	db.Create(&models.Session{Token: "livepurge0", UserID: other.ID, ExpiresAt: time.Now().Add(time.Hour)})

	if err := PurgeExpiredSessions(db); err != nil {
		t.Fatalf("purge: %v", err)
	}
	var count int64
	db.Model(&models.Session{}).Count(&count)
	if count != 1 {
		t.Fatalf("sessions after purge = %d, want 1", count)
	}
}
