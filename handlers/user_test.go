package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	router := setupServer(t)

	register := func(username, email, password, confirm string) int {
		return doJSON(t, router, "POST", "/api/auth/register", "", map[string]string{
			"username":         username,
			"email":            email,
			"password":         password,
			"password_confirm": confirm,
		}).Code
	}

	require.Equal(t, http.StatusCreated, register("alice", "alice@example.com", "password123", "password123"))

	tests := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
	}{
		{"short username", "al", "al@example.com", "password123", "password123"},
		{"bad email", "dave", "not-an-email", "password123", "password123"},
		{"short password", "dave", "dave@example.com", "short", "short"},
		{"mismatched confirm", "dave", "dave@example.com", "password123", "password124"},
		{"password equals username", "longusername", "dave@example.com", "LongUserName", "LongUserName"},
		{"duplicate username", "alice", "alice2@example.com", "password123", "password123"},
		{"duplicate email", "alice2", "alice@example.com", "password123", "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, http.StatusBadRequest, register(tt.username, tt.email, tt.password, tt.confirm))
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := setupServer(t)
	registerAndLogin(t, router, "alice", "alice@example.com")

	w := doJSON(t, router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	router := setupServer(t)
	token := registerAndLogin(t, router, "alice", "alice@example.com")

	require.Equal(t, http.StatusOK, doJSON(t, router, "POST", "/api/auth/logout", token, nil).Code)
	// Bearer tokens stay valid until expiry; logout only clears the cookie session
	require.Equal(t, http.StatusOK, doJSON(t, router, "GET", "/api/photos", token, nil).Code)
}
