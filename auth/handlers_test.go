package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newTestHandlers(t *testing.T) (*Handlers, *Service, *memSessionStore) {
	t.Helper()
	svc, _, sessions := newTestService(t)
	return NewHandlers(svc), svc, sessions
}

func postAuth(t *testing.T, h *Handlers, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.HandleAuth().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

// ---- POST /auth ----

func TestHandleAuth_Register(t *testing.T) {
	h, _, _ := newTestHandlers(t)

	rec := postAuth(t, h, `{"action":"register","email":"a@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": true}, decodeBody(t, rec))
	// Registration does not log the user in.
	assert.Nil(t, sessionCookie(t, rec))
}

func TestHandleAuth_RegisterDuplicate(t *testing.T) {
	h, _, _ := newTestHandlers(t)

	postAuth(t, h, `{"action":"register","email":"a@x.com","password":"pw1"}`)
	rec := postAuth(t, h, `{"action":"register","email":"a@x.com","password":"pw2"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Email already exists"}, decodeBody(t, rec))
}

func TestHandleAuth_LoginSetsCookie(t *testing.T) {
	h, _, sessions := newTestHandlers(t)
	postAuth(t, h, `{"action":"register","email":"a@x.com","password":"pw1"}`)

	rec := postAuth(t, h, `{"action":"login","email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": true}, decodeBody(t, rec))

	c := sessionCookie(t, rec)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Contains(t, sessions.sessions, c.Value)
}

func TestHandleAuth_LoginInvalidCredentials(t *testing.T) {
	h, _, sessions := newTestHandlers(t)
	postAuth(t, h, `{"action":"register","email":"a@x.com","password":"pw1"}`)

	rec := postAuth(t, h, `{"action":"login","email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Invalid credentials"}, decodeBody(t, rec))
	assert.Empty(t, sessions.sessions)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestHandleAuth_LogoutWithSession(t *testing.T) {
	h, _, sessions := newTestHandlers(t)
	postAuth(t, h, `{"action":"register","email":"a@x.com","password":"pw1"}`)
	login := postAuth(t, h, `{"action":"login","email":"a@x.com","password":"pw1"}`)
	c := sessionCookie(t, login)
	require.NotNil(t, c)

	rec := postAuth(t, h, `{"action":"logout"}`, c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": true}, decodeBody(t, rec))
	assert.Empty(t, sessions.sessions)

	cleared := sessionCookie(t, rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestHandleAuth_LogoutWithoutSession(t *testing.T) {
	h, _, _ := newTestHandlers(t)

	rec := postAuth(t, h, `{"action":"logout"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": true}, decodeBody(t, rec))
}

func TestHandleAuth_LogoutWithGarbageCookie(t *testing.T) {
	// A tampered cookie value still logs out cleanly.
	h, _, _ := newTestHandlers(t)

	rec := postAuth(t, h, `{"action":"logout"}`, &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": true}, decodeBody(t, rec))
}

func TestHandleAuth_UnknownAction(t *testing.T) {
	h, _, _ := newTestHandlers(t)

	rec := postAuth(t, h, `{"action":"frobnicate"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "unknown action"}, decodeBody(t, rec))
}

func TestHandleAuth_MissingFields(t *testing.T) {
	h, _, _ := newTestHandlers(t)

	for _, body := range []string{
		`{"action":"register","email":"a@x.com"}`,
		`{"action":"register","password":"pw1"}`,
		`{"action":"login","email":"a@x.com"}`,
		`{"action":"login","password":"pw1"}`,
	} {
		rec := postAuth(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestHandleAuth_MalformedBody(t *testing.T) {
	h, _, _ := newTestHandlers(t)

	rec := postAuth(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- session middleware ----

func protectedHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		writeJSON(w, http.StatusOK, map[string]int64{"user_id": userID})
	}
}

func TestSessionMiddleware_RejectsMissingToken(t *testing.T) {
	_, svc, _ := newTestHandlers(t)
	h := SessionMiddleware(svc)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_AcceptsCookie(t *testing.T) {
	handlers, svc, _ := newTestHandlers(t)
	postAuth(t, handlers, `{"action":"register","email":"a@x.com","password":"pw1"}`)
	login := postAuth(t, handlers, `{"action":"login","email":"a@x.com","password":"pw1"}`)
	c := sessionCookie(t, login)
	require.NotNil(t, c)

	h := SessionMiddleware(svc)(protectedHandler(t))
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(c)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddleware_AcceptsBearerToken(t *testing.T) {
	_, svc, _ := newTestHandlers(t)
	require.NoError(t, svc.Register(context.Background(), "a@x.com", "pw1"))
	token, err := svc.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	h := SessionMiddleware(svc)(protectedHandler(t))
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddleware_RejectsMalformedToken(t *testing.T) {
	// Tokens that are not UUIDs get a 401, not a 500 from the token column.
	_, svc, _ := newTestHandlers(t)
	h := SessionMiddleware(svc)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_RejectsLoggedOutToken(t *testing.T) {
	handlers, svc, _ := newTestHandlers(t)
	postAuth(t, handlers, `{"action":"register","email":"a@x.com","password":"pw1"}`)
	login := postAuth(t, handlers, `{"action":"login","email":"a@x.com","password":"pw1"}`)
	c := sessionCookie(t, login)
	require.NotNil(t, c)
	postAuth(t, handlers, `{"action":"logout"}`, c)

	h := SessionMiddleware(svc)(protectedHandler(t))
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(c)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
