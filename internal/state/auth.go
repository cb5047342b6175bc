package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// Resetter is a slice that logout returns to its empty state.
type Resetter interface {
	Reset(ctx context.Context)
}

// Auth owns the authentication slice. Any submitted credentials are
// accepted; validation happens before calls reach it.
//
// Auth is not safe for concurrent use.
type Auth struct {
	adapter *store.Adapter
	clock   Clock
	ids     idSource
	logger  *zap.Logger
	state   model.AuthState
	cascade []Resetter
}

// NewAuth loads the stored user, if any. cascade lists the slices reset,
// in order, on Logout.
func NewAuth(ctx context.Context, a *store.Adapter, cascade []Resetter, opts ...Option) *Auth {
	o := buildOptions(opts)
	auth := &Auth{
		adapter: a,
		clock:   o.clock,
		ids:     idSource{clock: o.clock},
		logger:  o.logger.Named("auth"),
		cascade: cascade,
	}

	if u := loadUser(ctx, a); u != nil {
		auth.state.User = u
		auth.state.IsAuthenticated = true
		auth.ids.last = u.ID
	}
	return auth
}

// loadUser returns the stored user, or nil when none is stored. A stored
// null or a record without an id counts as no user.
func loadUser(ctx context.Context, a *store.Adapter) *model.User {
	var u *model.User
	if !a.Read(ctx, store.KeyUser, &u) || u == nil || u.ID == 0 {
		return nil
	}
	return u
}

// State returns a snapshot of the slice.
func (a *Auth) State() model.AuthState {
	s := a.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.Error != nil {
		e := *s.Error
		s.Error = &e
	}
	return s
}

// User returns the signed-in user.
func (a *Auth) User() (model.User, bool) {
	if a.state.User == nil {
		return model.User{}, false
	}
	return *a.state.User, true
}

// IsAuthenticated reports whether a user is signed in.
func (a *Auth) IsAuthenticated() bool {
	return a.state.IsAuthenticated
}

// Signup creates a new user record and signs it in.
func (a *Auth) Signup(ctx context.Context, email, name string) model.User {
	u := a.signIn(ctx, email, name)
	a.logger.Info("signed up", zap.Int64("user_id", u.ID))
	return u
}

// Login signs in with a freshly built user record.
func (a *Auth) Login(ctx context.Context, email, name string) model.User {
	u := a.signIn(ctx, email, name)
	a.logger.Info("logged in", zap.Int64("user_id", u.ID))
	return u
}

func (a *Auth) signIn(ctx context.Context, email, name string) model.User {
	u := model.NewUser(a.ids.next(), email, name, a.clock.Now())

	a.state = model.AuthState{
		User:            &u,
		IsAuthenticated: true,
	}
	a.adapter.Write(ctx, store.KeyUser, u)

	return u
}

// Logout clears the user and then resets every cascade slice. Each step
// runs regardless of the others and nothing is rolled back.
func (a *Auth) Logout(ctx context.Context) {
	a.state = model.AuthState{}
	a.adapter.Remove(ctx, store.KeyUser)

	for _, r := range a.cascade {
		r.Reset(ctx)
	}
	a.logger.Info("logged out")
}

// SetLoading sets the in-flight flag. It is not persisted.
func (a *Auth) SetLoading(loading bool) {
	a.state.IsLoading = loading
}

// SetError records an error message, or clears it when msg is nil.
// Setting an error also ends loading.
func (a *Auth) SetError(msg *string) {
	if msg == nil {
		a.state.Error = nil
	} else {
		m := *msg
		a.state.Error = &m
	}
	a.state.IsLoading = false
}

// ClearError removes the error message.
func (a *Auth) ClearError() {
	a.state.Error = nil
}
