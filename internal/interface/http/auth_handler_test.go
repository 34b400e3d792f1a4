package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignup_Created(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	w := doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Sup3rSecret",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "User created successfully", body["message"])
	require.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	require.Equal(t, "alice@example.com", user["email"])
	require.Equal(t, "alice", user["username"])
	require.NotEmpty(t, user["id"])
}

func TestSignup_MissingFields(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	w := doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"username": "alice",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	require.NotEmpty(t, body["error"])
}

func TestSignup_WeakPassword(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	w := doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	payload := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Sup3rSecret",
	}
	w := doJSON(t, r, http.MethodPost, "/auth/signup", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/signup", payload, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "Email already registered", decodeBody(t, w)["error"])
}

func TestLogin_OK(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "Sup3rSecret",
	}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "bob@example.com",
		"password": "Sup3rSecret",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Login successful", body["message"])
	require.NotEmpty(t, body["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "Sup3rSecret",
	}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "bob@example.com",
		"password": "WrongPass1",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "bob@example.com"}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email and password are required", decodeBody(t, w)["error"])
}

func TestVerifyToken_OK(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	w := doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "Sup3rSecret",
	}, nil)
	token := decodeBody(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodGet, "/auth/verify-token", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["valid"])
	user := body["user"].(map[string]any)
	require.Equal(t, "carol@example.com", user["email"])
	require.Equal(t, "carol", user["username"])
	require.Equal(t, "user", user["role"])
	require.NotEmpty(t, user["user_id"])
}

func TestVerifyToken_MissingHeader(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	w := doJSON(t, r, http.MethodGet, "/auth/verify-token", nil, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "token is missing", decodeBody(t, w)["error"])
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	r := authRouter(svc, newTestJWT())

	w := doJSON(t, r, http.MethodGet, "/auth/verify-token", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid token", decodeBody(t, w)["error"])
}
