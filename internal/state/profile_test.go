package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

func strPtr(s string) *string { return &s }

func TestProfileUpdateMergesProvidedFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := NewProfile(f.ctx, f.adapter, nil)
	p.Update(f.ctx, model.ProfileUpdate{
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
		Email:     strPtr("ada@example.com"),
	})

	p.Update(f.ctx, model.ProfileUpdate{Age: strPtr("36")})

	want := model.Profile{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Age: "36"}
	assert.Equal(t, want, p.Profile())

	var stored model.Profile
	require.True(t, f.adapter.Read(f.ctx, store.KeyProfile, &stored))
	assert.Equal(t, want, stored)
}

func TestProfileSetAvatar(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := NewProfile(f.ctx, f.adapter, nil)

	p.SetAvatar(f.ctx, "data:image/jpeg;base64,AAAA")

	assert.Equal(t, "data:image/jpeg;base64,AAAA", p.Profile().Avatar)
	var stored model.Profile
	require.True(t, f.adapter.Read(f.ctx, store.KeyProfile, &stored))
	assert.Equal(t, "data:image/jpeg;base64,AAAA", stored.Avatar)
}

func TestProfileInitializeFromUser(t *testing.T) {
	t.Parallel()
	u := model.NewUser(1, "ada@example.com", "Ada Lovelace", epoch)

	t.Run("seeds empty profile", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := NewProfile(f.ctx, f.adapter, nil)

		require.True(t, p.InitializeFromUser(f.ctx, u))

		assert.Equal(t, model.ProfileFromUser(u), p.Profile())
		var stored model.Profile
		require.True(t, f.adapter.Read(f.ctx, store.KeyProfile, &stored))
		assert.Equal(t, "Ada", stored.FirstName)
	})

	t.Run("keeps edited profile", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := NewProfile(f.ctx, f.adapter, nil)
		p.Update(f.ctx, model.ProfileUpdate{FirstName: strPtr("Augusta")})

		assert.False(t, p.InitializeFromUser(f.ctx, u))
		assert.Equal(t, "Augusta", p.Profile().FirstName)
		assert.Empty(t, p.Profile().Email)
	})
}

func TestProfileResetRemovesKey(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := NewProfile(f.ctx, f.adapter, nil)
	p.Update(f.ctx, model.ProfileUpdate{FirstName: strPtr("Ada")})

	p.Reset(f.ctx)

	assert.True(t, p.Profile().IsEmpty())
	_, err := f.raw.Get(f.ctx, store.KeyProfile)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProfileLoadPrecedence(t *testing.T) {
	t.Parallel()
	u := model.NewUser(1, "ada@example.com", "Ada Lovelace", epoch)

	t.Run("stored profile wins", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.adapter.Write(f.ctx, store.KeyProfile, model.Profile{FirstName: "Stored"})

		p := NewProfile(f.ctx, f.adapter, &u)
		assert.Equal(t, "Stored", p.Profile().FirstName)
	})

	t.Run("falls back to user without persisting", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		p := NewProfile(f.ctx, f.adapter, &u)

		assert.Equal(t, "Lovelace", p.Profile().LastName)
		_, err := f.raw.Get(f.ctx, store.KeyProfile)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("stored null falls back to user", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.NoError(t, f.raw.Put(f.ctx, store.KeyProfile, []byte("null")))

		p := NewProfile(f.ctx, f.adapter, &u)

		assert.Equal(t, "Ada", p.Profile().FirstName)
		assert.Equal(t, "ada@example.com", p.Profile().Email)
	})

	t.Run("empty without either", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		assert.True(t, NewProfile(f.ctx, f.adapter, nil).Profile().IsEmpty())
	})
}
