package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/internal/catalog/store/drivers/sqlite"
	"github.com/aklatan/buklat/pkg/cryptox"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/jwtx"
	"github.com/aklatan/buklat/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "buklat-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	// The limiter state is shared across the package; give the tests room.
	generous := httpx.RateLimitConfig{RequestsPerWindow: 100000, Window: time.Minute, Burst: 100000}
	httpx.StrictLimit = generous
	httpx.LenientLimit = generous
	httpx.PublicLimit = generous

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.New([]byte("router-test-secret"), "")
	require.NoError(t, err)

	r := NewRouter("test", st, slogx.New(slogx.Config{Level: "error", Format: "text"}))
	r.AuthService = &service.Auth{Store: st, Codec: codec, TokenTTL: 15 * time.Minute}
	r.AuthorsService = &service.Authors{Store: st}
	r.RecommendersService = &service.Recommenders{Store: st}
	r.BooksService = &service.Books{Store: st}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) (name, detail string) {
	t.Helper()

	var body struct {
		Name   string `json:"name"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Name, body.Detail
}

// registerAndLogin creates an account and returns a valid access token.
func registerAndLogin(t *testing.T, r *Router, username string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/auth/", "",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"hunter2!"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	form := url.Values{"username": {username}, "password": {"hunter2!"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	r.ServeHTTP(loginRec, req)
	require.Equal(t, http.StatusOK, loginRec.Code, loginRec.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &token))
	require.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func TestRootBanner(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "The server is running.", rec.Body.String())
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t)

	t.Run("success returns the welcome string", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/", "",
			`{"username":"alice","email":"alice@example.com","password":"hunter2!"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Welcome to BuklatAPI, alice!")
	})

	t.Run("duplicate username is a 401", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/", "",
			`{"username":"alice","email":"fresh@example.com","password":"hunter2!"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		name, detail := errorBody(t, rec)
		require.Equal(t, "RegistrationFailed", name)
		require.Equal(t, "Username has already been taken.", detail)
	})

	t.Run("missing fields are a 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/", "",
			`{"email":"x@example.com","password":"hunter2!"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		name, detail := errorBody(t, rec)
		require.Equal(t, "ValidationError", name)
		require.Contains(t, detail, "username")
	})

	t.Run("non-JSON body is a 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/auth/", "", `not json`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "alice")

	t.Run("bad password is a 401 with the uniform message", func(t *testing.T) {
		form := url.Values{"username": {"alice"}, "password": {"wrong"}}
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		name, detail := errorBody(t, rec)
		require.Equal(t, "AuthenticationFailed", name)
		require.Equal(t, "Invalid username or password.", detail)
	})

	t.Run("missing password is a 422", func(t *testing.T) {
		form := url.Values{"username": {"alice"}}
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestMeEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	t.Run("returns the profile for a valid token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/auth/me", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var profile struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			IsActive bool   `json:"is_active"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		require.Equal(t, "alice", profile.Username)
		require.Equal(t, "alice@example.com", profile.Email)
		require.True(t, profile.IsActive)
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/auth/me", "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		name, detail := errorBody(t, rec)
		require.Equal(t, "InvalidToken", name)
		require.Equal(t, "Not authenticated.", detail)
	})

	t.Run("garbage token is a 401", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/auth/me", "garbage", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		name, _ := errorBody(t, rec)
		require.Equal(t, "InvalidToken", name)
	})
}

func TestAuthorEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	t.Run("crud requires a token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/v1/authors", "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create, conflict, get, update, delete", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/authors", token, `{"name":"Ursula K. Le Guin"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doJSON(t, r, http.MethodPost, "/v1/authors", token, `{"name":"Ursula K. Le Guin"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
		name, detail := errorBody(t, rec)
		require.Equal(t, "EntityAlreadyExists", name)
		require.Equal(t, "Author already exists.", detail)

		rec = doJSON(t, r, http.MethodGet, "/v1/authors/1", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, r, http.MethodGet, "/v1/authors/42", token, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		_, detail = errorBody(t, rec)
		require.Equal(t, "Author with id 42 does not exist.", detail)

		rec = doJSON(t, r, http.MethodPut, "/v1/authors/1", token, `{"name":"U. K. Le Guin"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, r, http.MethodDelete, "/v1/authors/1", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "U. K. Le Guin")
	})

	t.Run("non-numeric id is a 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/v1/authors/abc", token, "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestBookEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	rec := doJSON(t, r, http.MethodPost, "/v1/authors", token, `{"name":"Ursula K. Le Guin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, http.MethodPost, "/v1/recommenders", token, `{"name":"Book Club"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("missing author reference is a 404", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/book", token,
			`{"author_id":9,"recommender_id":1,"title":"Orphan","year_published":2000}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		_, detail := errorBody(t, rec)
		require.Equal(t, "Author with id 9 does not exist.", detail)
	})

	t.Run("create and partial update", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/book", token,
			`{"author_id":1,"recommender_id":1,"title":"The Dispossessed","year_published":1974}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var book struct {
			ID          int64 `json:"id"`
			IsPurchased bool  `json:"is_purchased"`
			IsRead      bool  `json:"is_read"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
		require.False(t, book.IsPurchased)
		require.False(t, book.IsRead)

		rec = doJSON(t, r, http.MethodPut, "/v1/book/1", token, `{"is_read":true}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var updated struct {
			Title  string `json:"title"`
			IsRead bool   `json:"is_read"`
			Year   int    `json:"year_published"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		require.Equal(t, "The Dispossessed", updated.Title)
		require.Equal(t, 1974, updated.Year)
		require.True(t, updated.IsRead)
	})

	t.Run("missing body field is a 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/book", token,
			`{"recommender_id":1,"title":"No Author","year_published":2000}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		_, detail := errorBody(t, rec)
		require.Contains(t, detail, "author_id")
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"database":"ok"`)
}
