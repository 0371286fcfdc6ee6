package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"
)

const (
	sessionCookieName      = "teambook_session"
	sessionTTL             = 8 * time.Hour
	sessionTokenBytes      = 32
	sessionCleanupInterval = 15 * time.Minute
)

type sessionRecord struct {
	UserID    int64
	ExpiresAt time.Time
}

var (
	sessionMu sync.RWMutex
	// In-memory sessions are intentionally ephemeral; a restart logs
	// everyone out.
	sessionStore       = make(map[string]sessionRecord)
	sessionCleanupOnce sync.Once
)

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

// CreateSession issues a session token for the user and sets the cookie.
func CreateSession(w http.ResponseWriter, userID int64) error {
	if w == nil {
		return errors.New("session requires response writer")
	}

	startSessionCleanup()

	clearExistingSessionsForUser(userID)

	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(sessionTTL)
	sessionMu.Lock()
	sessionStore[token] = sessionRecord{
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	sessionMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	return nil
}

// ClearSession removes the request's session and expires the cookie.
func ClearSession(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			deleteSession(cookie.Value)
		}
	}

	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// SessionUserID resolves the request's session cookie to a user ID.
func SessionUserID(r *http.Request) (int64, bool) {
	if r == nil {
		return 0, false
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return 0, false
	}

	sessionMu.RLock()
	record, ok := sessionStore[cookie.Value]
	sessionMu.RUnlock()
	if !ok {
		return 0, false
	}
	if time.Now().After(record.ExpiresAt) {
		deleteSession(cookie.Value)
		return 0, false
	}
	return record.UserID, true
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func deleteSession(token string) {
	sessionMu.Lock()
	delete(sessionStore, token)
	sessionMu.Unlock()
}

func clearExistingSessionsForUser(userID int64) {
	sessionMu.Lock()
	for token, record := range sessionStore {
		if record.UserID == userID {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func startSessionCleanup() {
	sessionCleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(sessionCleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				sessionMu.Lock()
				for token, record := range sessionStore {
					if now.After(record.ExpiresAt) {
						delete(sessionStore, token)
					}
				}
				sessionMu.Unlock()
			}
		}()
	})
}

// resetSessionsForTest empties the session store between tests.
func resetSessionsForTest() {
	sessionMu.Lock()
	sessionStore = make(map[string]sessionRecord)
	sessionMu.Unlock()
}
