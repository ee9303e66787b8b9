package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/adboard/internal/handler"
	"github.com/xxxsen/adboard/internal/middleware"
	"github.com/xxxsen/adboard/internal/repo"
	"github.com/xxxsen/adboard/internal/service"
	"github.com/xxxsen/adboard/internal/testutil"
)

var testSecret = []byte("test-secret")

func setupRouter(t *testing.T) (http.Handler, *sqlx.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	authService := service.NewAuthService(repo.NewUserRepo(db), testSecret, time.Hour)
	adService := service.NewAdService(repo.NewAdRepo(db))

	router := handler.NewRouter(handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Ads:       handler.NewAdHandler(adService),
		Health:    handler.NewHealthHandler(db),
		JWTSecret: testSecret,
	},
		middleware.RequestID(),
		middleware.Recover(),
		middleware.Timeout(5*time.Second),
	)
	return router, db
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		payload, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out), resp.Body.String())
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type adBody struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	OwnerID     int64  `json:"owner_id"`
}

// registerAndLogin creates a user and returns its id and bearer token.
func registerAndLogin(t *testing.T, router http.Handler, email string) (int64, string) {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret1"}
	resp := doJSON(t, router, http.MethodPost, "/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var user struct {
		ID int64 `json:"id"`
	}
	decode(t, resp, &user)

	resp = doJSON(t, router, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return user.ID, login.Token
}

func createAd(t *testing.T, router http.Handler, token, title, description string) adBody {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/ads", token, map[string]string{"title": title, "description": description})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var ad adBody
	decode(t, resp, &ad)
	return ad
}
