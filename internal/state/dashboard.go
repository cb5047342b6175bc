package state

import (
	"context"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// Dashboard bundles the four slices over one store and wires the logout
// cascade: profile, then tasks, then notifications.
type Dashboard struct {
	Auth          *Auth
	Profile       *Profile
	Tasks         *Tasks
	Notifications *Notifications
}

// New loads every slice from a.
func New(ctx context.Context, a *store.Adapter, opts ...Option) *Dashboard {
	o := buildOptions(opts)

	d := &Dashboard{
		Tasks:         NewTasks(ctx, a, opts...),
		Notifications: NewNotifications(ctx, a, opts...),
	}

	d.Profile = NewProfile(ctx, a, loadUser(ctx, a), opts...)

	d.Auth = NewAuth(ctx, a, []Resetter{d.Profile, d.Tasks, d.Notifications}, opts...)

	if o.seedDemo {
		d.Notifications.SeedDemo(ctx)
	}
	return d
}

// Signup signs up and seeds an empty profile from the new user.
func (d *Dashboard) Signup(ctx context.Context, email, name string) model.User {
	u := d.Auth.Signup(ctx, email, name)
	d.Profile.InitializeFromUser(ctx, u)
	return u
}

// Login logs in and seeds an empty profile from the new user.
func (d *Dashboard) Login(ctx context.Context, email, name string) model.User {
	u := d.Auth.Login(ctx, email, name)
	d.Profile.InitializeFromUser(ctx, u)
	return u
}

// Logout signs out and resets every slice.
func (d *Dashboard) Logout(ctx context.Context) {
	d.Auth.Logout(ctx)
}
