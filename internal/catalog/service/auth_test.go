package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/store"
	"github.com/aklatan/buklat/internal/catalog/store/drivers/sqlite"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/cryptox"
	"github.com/aklatan/buklat/pkg/idx"
	"github.com/aklatan/buklat/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "buklat-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// racingStore simulates registrations that lose a race: a rival row is
// inserted immediately before every CreateUser, after the pre-checks have
// already passed.
type racingStore struct {
	store.Store
	rival domain.User
}

func (s *racingStore) Users() store.Users {
	return &racingUsers{Users: s.Store.Users(), rival: s.rival}
}

type racingUsers struct {
	store.Users
	rival domain.User
}

func (u *racingUsers) CreateUser(ctx context.Context, user domain.User) error {
	_ = u.Users.CreateUser(ctx, u.rival)
	return u.Users.CreateUser(ctx, user)
}

func newAuth(t *testing.T) *Auth {
	t.Helper()

	codec, err := jwtx.New([]byte("test-secret"), "")
	require.NoError(t, err)

	return &Auth{Store: newTestStore(t), Codec: codec, TokenTTL: 15 * time.Minute}
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns a welcome message", func(t *testing.T) {
		auth := newAuth(t)

		msg, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		require.NoError(t, err)
		require.Equal(t, "Welcome to BuklatAPI, alice!", msg)

		user, err := auth.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", user.Email)
		require.True(t, user.IsActive)
		require.NotEqual(t, "hunter2!", user.HashedPassword)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		auth := newAuth(t)

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		require.NoError(t, err)

		_, err = auth.Register(ctx, "alice", "other@example.com", "hunter2!")
		requireAPIError(t, err, 401, apierr.NameRegistrationFailed, "Username has already been taken.")
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		auth := newAuth(t)

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		require.NoError(t, err)

		_, err = auth.Register(ctx, "bob", "alice@example.com", "hunter2!")
		requireAPIError(t, err, 401, apierr.NameRegistrationFailed, "Email has already been taken.")
	})

	t.Run("username collision wins when both are taken", func(t *testing.T) {
		auth := newAuth(t)

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		require.NoError(t, err)

		_, err = auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		requireAPIError(t, err, 401, apierr.NameRegistrationFailed, "Username has already been taken.")
	})

	t.Run("duplicate username slipping past the pre-checks", func(t *testing.T) {
		auth := newAuth(t)
		auth.Store = &racingStore{Store: auth.Store, rival: domain.User{
			ID:             idx.New().String(),
			Username:       "alice",
			Email:          "rival@example.com",
			HashedPassword: "x",
			IsActive:       true,
		}}

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		requireAPIError(t, err, 401, apierr.NameRegistrationFailed, "Username has already been taken.")
	})

	t.Run("duplicate email slipping past the pre-checks", func(t *testing.T) {
		auth := newAuth(t)
		auth.Store = &racingStore{Store: auth.Store, rival: domain.User{
			ID:             idx.New().String(),
			Username:       "rival",
			Email:          "alice@example.com",
			HashedPassword: "x",
			IsActive:       true,
		}}

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		requireAPIError(t, err, 401, apierr.NameRegistrationFailed, "Email has already been taken.")
	})
}

func TestRegisterConcurrentDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	auth := newAuth(t)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var failures int
	for err := range errs {
		if err == nil {
			continue
		}
		failures++
		requireAPIError(t, err, 401, apierr.NameRegistrationFailed, "Username has already been taken.")
	}
	require.Equal(t, 1, failures)

	user, err := auth.Store.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issues a bearer token for valid credentials", func(t *testing.T) {
		auth := newAuth(t)

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		require.NoError(t, err)

		token, err := auth.Login(ctx, "alice", "hunter2!")
		require.NoError(t, err)
		require.Equal(t, TokenTypeBearer, token.TokenType)

		claims, err := auth.Codec.Verify(token.AccessToken)
		require.NoError(t, err)
		subject, err := claims.GetSubject()
		require.NoError(t, err)
		require.Equal(t, "alice", subject)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		auth := newAuth(t)

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		require.NoError(t, err)

		_, badPass := auth.Login(ctx, "alice", "wrong")
		requireAPIError(t, badPass, 401, apierr.NameAuthenticationFailed, "Invalid username or password.")

		_, noUser := auth.Login(ctx, "mallory", "hunter2!")
		requireAPIError(t, noUser, 401, apierr.NameAuthenticationFailed, "Invalid username or password.")
	})
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("resolves a fresh token", func(t *testing.T) {
		auth := newAuth(t)

		_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
		require.NoError(t, err)

		token, err := auth.Login(ctx, "alice", "hunter2!")
		require.NoError(t, err)

		user, err := auth.CurrentUser(ctx, token.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		auth := newAuth(t)

		_, err := auth.CurrentUser(ctx, "not-a-jwt")
		requireAPIError(t, err, 401, apierr.NameInvalidToken, "Invalid token.")
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		auth := newAuth(t)

		past := time.Now().Add(-2 * time.Hour)
		issuer, err := jwtx.New([]byte("test-secret"), "", jwtx.WithClock(func() time.Time { return past }))
		require.NoError(t, err)

		stale, err := issuer.Issue("alice", nil, 15*time.Minute)
		require.NoError(t, err)

		_, err = auth.CurrentUser(ctx, stale)
		requireAPIError(t, err, 401, apierr.NameInvalidToken, "Token has expired.")
	})

	t.Run("rejects tokens whose subject no longer exists", func(t *testing.T) {
		auth := newAuth(t)

		token, err := auth.Codec.Issue("ghost", nil, 15*time.Minute)
		require.NoError(t, err)

		_, err = auth.CurrentUser(ctx, token)
		requireAPIError(t, err, 401, apierr.NameInvalidToken, "Invalid credentials.")
	})
}

func TestRequireActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	auth := newAuth(t)
	_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter2!")
	require.NoError(t, err)

	user, err := auth.Store.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	same, err := RequireActive(user)
	require.NoError(t, err)
	require.Equal(t, user, same)

	user.IsActive = false
	_, err = RequireActive(user)
	requireAPIError(t, err, 403, apierr.NameInvalidAccount, "Account has been disabled or deactivated.")
}

// requireAPIError asserts err is an *apierr.Error with the given shape.
func requireAPIError(t *testing.T, err error, status int, name, message string) {
	t.Helper()

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, name, apiErr.Name)
	require.Equal(t, message, apiErr.Message)
}
