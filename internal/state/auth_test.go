package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
	"github.com/nhle/dashboard/internal/testutil"
)

type recordingResetter struct {
	name  string
	calls *[]string
}

func (r recordingResetter) Reset(_ context.Context) {
	*r.calls = append(*r.calls, r.name)
}

func TestAuthLoginBuildsUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	auth := NewAuth(f.ctx, f.adapter, nil, WithClock(f.clock))
	require.False(t, auth.IsAuthenticated())

	u := auth.Login(f.ctx, "ada@example.com", "Ada King Lovelace")

	assert.Equal(t, epoch.UnixMilli(), u.ID)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "King Lovelace", u.LastName)
	assert.Equal(t, "Ada King Lovelace", u.Name)
	assert.Empty(t, u.Age)
	assert.Empty(t, u.Avatar)
	assert.True(t, u.CreatedAt.Equal(epoch))

	st := auth.State()
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, u.ID, st.User.ID)

	var stored model.User
	require.True(t, f.adapter.Read(f.ctx, store.KeyUser, &stored))
	assert.Equal(t, u.ID, stored.ID)
	assert.Equal(t, u.Email, stored.Email)
}

func TestAuthSignupSingleName(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	auth := NewAuth(f.ctx, f.adapter, nil, WithClock(f.clock))

	u := auth.Signup(f.ctx, "cher@example.com", "Cher")

	assert.Equal(t, "Cher", u.FirstName)
	assert.Empty(t, u.LastName)
}

func TestAuthSignInClearsErrorAndLoading(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	auth := NewAuth(f.ctx, f.adapter, nil)
	msg := "Login failed. Please try again."
	auth.SetError(&msg)
	auth.SetLoading(true)

	auth.Login(f.ctx, "a@b.co", "a")

	st := auth.State()
	assert.False(t, st.IsLoading)
	assert.Nil(t, st.Error)
}

func TestAuthSetErrorEndsLoading(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	auth := NewAuth(f.ctx, f.adapter, nil)

	auth.SetLoading(true)
	assert.True(t, auth.State().IsLoading)

	msg := "boom"
	auth.SetError(&msg)
	st := auth.State()
	require.NotNil(t, st.Error)
	assert.Equal(t, "boom", *st.Error)
	assert.False(t, st.IsLoading)

	auth.ClearError()
	assert.Nil(t, auth.State().Error)

	auth.SetError(&msg)
	auth.SetError(nil)
	assert.Nil(t, auth.State().Error)
}

func TestAuthRestoresStoredUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	first := NewAuth(f.ctx, f.adapter, nil, WithClock(f.clock))
	u := first.Login(f.ctx, "ada@example.com", "Ada")

	restored := NewAuth(f.ctx, f.adapter, nil, WithClock(f.clock))

	got, ok := restored.User()
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, restored.IsAuthenticated())

	// A second login in the same millisecond still gets a new id.
	again := restored.Login(f.ctx, "ada@example.com", "Ada")
	assert.Greater(t, again.ID, u.ID)
}

func TestAuthCorruptStoredUserIsSignedOut(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	require.NoError(t, f.raw.Put(f.ctx, store.KeyUser, []byte("not-json")))

	auth := NewAuth(f.ctx, f.adapter, nil)

	assert.False(t, auth.IsAuthenticated())
	_, ok := auth.User()
	assert.False(t, ok)
}

func TestAuthStoredNullUserIsSignedOut(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"null", "{}"} {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			require.NoError(t, f.raw.Put(f.ctx, store.KeyUser, []byte(raw)))

			auth := NewAuth(f.ctx, f.adapter, nil)

			assert.False(t, auth.IsAuthenticated())
			_, ok := auth.User()
			assert.False(t, ok)
		})
	}
}

func TestAuthLogoutRunsCascadeInOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	var calls []string
	cascade := []Resetter{
		recordingResetter{name: "profile", calls: &calls},
		recordingResetter{name: "tasks", calls: &calls},
		recordingResetter{name: "notifications", calls: &calls},
	}
	auth := NewAuth(f.ctx, f.adapter, cascade)
	auth.Login(f.ctx, "a@b.co", "A B")

	auth.Logout(f.ctx)

	assert.Equal(t, []string{"profile", "tasks", "notifications"}, calls)
	assert.False(t, auth.IsAuthenticated())
	assert.Nil(t, auth.State().User)

	_, err := f.raw.Get(f.ctx, store.KeyUser)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuthLogoutCascadesDespiteStoreFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	broken := store.NewAdapter(testutil.BrokenStore{}, nil)
	var calls []string
	auth := NewAuth(ctx, broken, []Resetter{recordingResetter{name: "tasks", calls: &calls}})

	auth.Login(ctx, "a@b.co", "A")
	assert.True(t, auth.IsAuthenticated(), "in-memory state survives a failed write")

	auth.Logout(ctx)
	assert.Equal(t, []string{"tasks"}, calls)
	assert.False(t, auth.IsAuthenticated())
}
