package handler_test

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	router, _ := setupRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/register", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.JSONEq(t, `{"id":1,"email":"a@x.com"}`, resp.Body.String())
	require.NotContains(t, resp.Body.String(), "password")

	resp = doJSON(t, router, http.MethodPost, "/register", "", map[string]string{"email": "a@x.com", "password": "other12"})
	require.Equal(t, http.StatusConflict, resp.Code)
	var body errorBody
	decode(t, resp, &body)
	require.Equal(t, "conflict", body.Error.Code)
	require.Equal(t, "user with this email already exists", body.Error.Message)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "empty body", body: nil},
		{name: "malformed json", body: `{"email":`},
		{name: "missing email", body: map[string]string{"password": "secret1"}},
		{name: "missing password", body: map[string]string{"email": "a@x.com"}},
		{name: "bad email", body: map[string]string{"email": "not-an-email", "password": "secret1"}},
		{name: "wrong type", body: `{"email":1,"password":"secret1"}`},
		{name: "password too long", body: map[string]string{"email": "a@x.com", "password": strings.Repeat("p", 80)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, router, http.MethodPost, "/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			var body errorBody
			decode(t, resp, &body)
			require.Equal(t, "invalid", body.Error.Code)
			require.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	router, db := setupRouter(t)

	const workers = 6
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := doJSON(t, router, http.MethodPost, "/register", "", map[string]string{"email": "race@x.com", "password": "secret1"})
			codes[i] = resp.Code
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	require.Equal(t, 1, created)
	require.Equal(t, workers-1, conflicts)

	var count int
	require.NoError(t, db.Get(&count, db.Rebind("SELECT count(*) FROM users WHERE email = ?"), "race@x.com"))
	require.Equal(t, 1, count)
}

func TestLogin(t *testing.T) {
	router, _ := setupRouter(t)
	registerAndLogin(t, router, "a@x.com")

	resp := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	wrongPassword := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{"email": "a@x.com", "password": "nope"})
	unknownUser := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{"email": "ghost@x.com", "password": "secret1"})
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
	require.JSONEq(t, `{"error":{"code":"unauthorized","message":"invalid credentials"}}`, wrongPassword.Body.String())
}
