package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/connectin/connectin/internal/domain/account"
	"github.com/connectin/connectin/internal/http/handlers"
	"github.com/connectin/connectin/internal/http/middlewares"
	"github.com/connectin/connectin/internal/security"
	"github.com/connectin/connectin/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fakes with function fields so each test overrides just what it needs.

type fakeAccounts struct {
	createFn     func(ctx context.Context, acc account.Account) error
	getByEmailFn func(ctx context.Context, email string) (account.Account, error)
	getByIDFn    func(ctx context.Context, id string) (account.Account, error)
}

func (f *fakeAccounts) Create(ctx context.Context, acc account.Account) error {
	if f.createFn != nil {
		return f.createFn(ctx, acc)
	}
	return nil
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return account.Account{}, account.ErrNotFound
}

func (f *fakeAccounts) GetByID(ctx context.Context, id string) (account.Account, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return account.Account{}, account.ErrNotFound
}

type fakeSessions struct {
	issueFn   func(ctx context.Context, accountID string) (session.Session, error)
	resolveFn func(ctx context.Context, token string) (session.Session, error)
	revokeFn  func(ctx context.Context, accountID string) error
}

func (f *fakeSessions) Issue(ctx context.Context, accountID string) (session.Session, error) {
	if f.issueFn != nil {
		return f.issueFn(ctx, accountID)
	}
	return session.Session{Token: "tok-" + accountID, AccountID: accountID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeSessions) Resolve(ctx context.Context, token string) (session.Session, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, token)
	}
	return session.Session{}, session.ErrNotFound
}

func (f *fakeSessions) Revoke(ctx context.Context, accountID string) error {
	if f.revokeFn != nil {
		return f.revokeFn(ctx, accountID)
	}
	return nil
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func putJSON(t *testing.T, router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func postRaw(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func getRequest(t *testing.T, path string, headers map[string]string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}

	return out
}

func newAuthRouter(accounts *fakeAccounts, sessions *fakeSessions) *gin.Engine {
	h := handlers.NewAuthHandler(accounts, sessions, testLogger())
	mw := middlewares.NewAuthMiddleware(sessions, accounts)

	router := gin.New()
	router.POST("/auth/signup", h.SignUp)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", mw.RequireSession(), h.Logout)

	return router
}

func TestSignUp_Success(t *testing.T) {
	var created account.Account

	accounts := &fakeAccounts{
		createFn: func(_ context.Context, acc account.Account) error {
			created = acc
			return nil
		},
	}

	router := newAuthRouter(accounts, &fakeSessions{})

	w := postJSON(t, router, "/auth/signup", gin.H{
		"email":     "Ada@Example.com",
		"password":  "s3cret-pass",
		"role":      "developer",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)

	if body["success"] != true || body["message"] != "Signup successful" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["sessionId"] == "" || body["userId"] == "" {
		t.Fatalf("expected session and user ids, got %v", body)
	}

	if created.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.PasswordHash == "" || created.PasswordHash == "s3cret-pass" {
		t.Fatalf("expected password hashed, got %q", created.PasswordHash)
	}
}

func TestSignUp_Validation(t *testing.T) {
	router := newAuthRouter(&fakeAccounts{}, &fakeSessions{})

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"password": "s3cret", "role": "developer", "firstName": "A", "lastName": "B"}},
		{"bad email", gin.H{"email": "nope", "password": "s3cret", "role": "developer", "firstName": "A", "lastName": "B"}},
		{"missing password", gin.H{"email": "a@b.com", "role": "developer", "firstName": "A", "lastName": "B"}},
		{"invalid role", gin.H{"email": "a@b.com", "password": "s3cret", "role": "admin", "firstName": "A", "lastName": "B"}},
		{"missing names", gin.H{"email": "a@b.com", "password": "s3cret", "role": "developer"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, router, "/auth/signup", tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
			}
		})
	}
}

// Any non-empty password is accepted; there is no length or complexity rule.
func TestSignUp_ShortPasswordAccepted(t *testing.T) {
	var created account.Account

	accounts := &fakeAccounts{
		createFn: func(_ context.Context, acc account.Account) error {
			created = acc
			return nil
		},
	}

	router := newAuthRouter(accounts, &fakeSessions{})

	w := postJSON(t, router, "/auth/signup", gin.H{
		"email":     "dev@x.com",
		"password":  "p1",
		"role":      "developer",
		"firstName": "Dev",
		"lastName":  "One",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if token, _ := body["sessionId"].(string); token == "" {
		t.Fatalf("expected a session token, got %v", body)
	}

	if err := security.CheckPassword(created.PasswordHash, "p1"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	accounts := &fakeAccounts{
		createFn: func(_ context.Context, _ account.Account) error {
			return account.ErrEmailTaken
		},
	}

	router := newAuthRouter(accounts, &fakeSessions{})

	w := postJSON(t, router, "/auth/signup", gin.H{
		"email":     "ada@example.com",
		"password":  "s3cret-pass",
		"role":      "developer",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	}, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	errObj, _ := body["error"].(map[string]any)

	if errObj["message"] != "Email already exists" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestLogin_SuccessAndUniformFailure(t *testing.T) {
	hash, err := security.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	accounts := &fakeAccounts{
		getByEmailFn: func(_ context.Context, email string) (account.Account, error) {
			if email == "ada@example.com" {
				return account.Account{
					ID: "acc-1", Email: email, PasswordHash: hash,
					Role: "developer", FirstName: "Ada", LastName: "Lovelace",
				}, nil
			}
			return account.Account{}, account.ErrNotFound
		},
	}

	router := newAuthRouter(accounts, &fakeSessions{})

	w := postJSON(t, router, "/auth/login", gin.H{"email": "ada@example.com", "password": "correct-horse"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["firstName"] != "Ada" || body["role"] != "developer" {
		t.Fatalf("unexpected body: %v", body)
	}

	// wrong password and unknown email must be indistinguishable
	wrongPass := postJSON(t, router, "/auth/login", gin.H{"email": "ada@example.com", "password": "wrong"}, nil)
	unknown := postJSON(t, router, "/auth/login", gin.H{"email": "nobody@example.com", "password": "wrong"}, nil)

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("failure bodies differ:\n%s\n%s", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestLogout(t *testing.T) {
	revoked := ""

	sessions := &fakeSessions{
		resolveFn: func(_ context.Context, token string) (session.Session, error) {
			if token == "valid-token" {
				return session.Session{Token: token, AccountID: "acc-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
			}
			return session.Session{}, session.ErrNotFound
		},
		revokeFn: func(_ context.Context, accountID string) error {
			revoked = accountID
			return nil
		},
	}

	accounts := &fakeAccounts{
		getByIDFn: func(_ context.Context, id string) (account.Account, error) {
			return account.Account{ID: id, Role: "developer"}, nil
		},
	}

	router := newAuthRouter(accounts, sessions)

	w := postJSON(t, router, "/auth/logout", gin.H{}, map[string]string{"Authorization": "Bearer valid-token"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if revoked != "acc-1" {
		t.Fatalf("expected acc-1 revoked, got %q", revoked)
	}

	body := decodeBody(t, w)
	if body["message"] != "Logout successful" {
		t.Fatalf("unexpected body: %v", body)
	}

	// no token
	noAuth := postJSON(t, router, "/auth/logout", gin.H{}, nil)
	if noAuth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", noAuth.Code)
	}
}

func TestLogin_StoreError(t *testing.T) {
	accounts := &fakeAccounts{
		getByEmailFn: func(_ context.Context, _ string) (account.Account, error) {
			return account.Account{}, errors.New("connection refused")
		},
	}

	router := newAuthRouter(accounts, &fakeSessions{})

	w := postJSON(t, router, "/auth/login", gin.H{"email": "a@b.com", "password": "x"}, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
