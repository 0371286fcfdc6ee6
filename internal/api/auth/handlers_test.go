package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gmonroe/teambook/internal/ratelimit"
	"github.com/gmonroe/teambook/internal/testutil"
)

func initAuthTest(t *testing.T) {
	t.Helper()
	database := testutil.NewTestDB(t)
	queries = database.Queries
	appConfig = nil
	loginLimiter = ratelimit.New(ratelimit.DefaultConfig())
	t.Cleanup(loginLimiter.Close)
	resetSessionsForTest()
}

func postJSON(handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	handler(rec, req)
	return rec
}

func TestRegisterCreatesPendingAccountWithSession(t *testing.T) {
	initAuthTest(t)

	rec := postJSON(HandleRegister, "/api/v1/auth/register",
		`{"name":"Dana","email":"Dana@Example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"role":"pending"`) {
		t.Errorf("new accounts must be pending: %s", rec.Body.String())
	}
	// Email is stored lowercased.
	if !strings.Contains(rec.Body.String(), `"email":"dana@example.com"`) {
		t.Errorf("email not normalized: %s", rec.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("register must open a session")
	}

	// Duplicate registration is rejected.
	rec = postJSON(HandleRegister, "/api/v1/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate email: status %d, want 409", rec.Code)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	initAuthTest(t)

	cases := []string{
		`{"name":"","email":"a@b.com","password":"hunter2hunter2"}`,
		`{"name":"Dana","email":"not-an-email","password":"hunter2hunter2"}`,
		`{"name":"Dana","email":"a@b.com","password":"short"}`,
	}
	for i, body := range cases {
		rec := postJSON(HandleRegister, "/api/v1/auth/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status %d, want 400 (body %s)", i, rec.Code, rec.Body.String())
		}
	}
}

func TestLoginFlow(t *testing.T) {
	initAuthTest(t)

	rec := postJSON(HandleRegister, "/api/v1/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d", rec.Code)
	}

	rec = postJSON(HandleLogin, "/api/v1/auth/login",
		`{"email":"dana@example.com","password":"wrong-password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status %d, want 401", rec.Code)
	}
	// Unknown accounts get the same message as wrong passwords.
	missing := postJSON(HandleLogin, "/api/v1/auth/login",
		`{"email":"nobody@example.com","password":"wrong-password"}`)
	if missing.Code != http.StatusUnauthorized || missing.Body.String() != rec.Body.String() {
		t.Errorf("missing account must be indistinguishable: %d %s vs %d %s",
			missing.Code, missing.Body.String(), rec.Code, rec.Body.String())
	}

	rec = postJSON(HandleLogin, "/api/v1/auth/login",
		`{"email":"dana@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rec.Code, rec.Body.String())
	}

	// The session cookie resolves back to the account.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	user, err := UserFromRequest(req, queries)
	if err != nil {
		t.Fatalf("UserFromRequest: %v", err)
	}
	if user == nil || user.Email != "dana@example.com" {
		t.Fatalf("session resolved to %+v", user)
	}
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	initAuthTest(t)

	rec := postJSON(HandleRegister, "/api/v1/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d", rec.Code)
	}

	for i := 0; i < 5; i++ {
		rec := postJSON(HandleLogin, "/api/v1/auth/login",
			`{"email":"dana@example.com","password":"wrong-password"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status %d, want 401", i, rec.Code)
		}
	}

	// The account is locked now, even with the right password.
	rec = postJSON(HandleLogin, "/api/v1/auth/login",
		`{"email":"dana@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("locked account: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response should carry Retry-After")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	initAuthTest(t)

	rec := postJSON(HandleRegister, "/api/v1/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	HandleLogout(out, req)
	if out.Code != http.StatusOK {
		t.Fatalf("logout: status %d", out.Code)
	}

	if user, err := UserFromRequest(req, queries); err != nil || user != nil {
		t.Fatalf("session must be dead after logout, got %+v err %v", user, err)
	}
}
