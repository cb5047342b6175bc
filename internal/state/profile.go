package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// Profile owns the editable profile slice.
type Profile struct {
	adapter *store.Adapter
	logger  *zap.Logger
	profile model.Profile
}

// NewProfile loads the stored profile. When none is stored (a stored null
// counts as none) and seed is non-nil, the profile starts from the seed
// user's fields without being persisted.
func NewProfile(ctx context.Context, a *store.Adapter, seed *model.User, opts ...Option) *Profile {
	o := buildOptions(opts)
	p := &Profile{adapter: a, logger: o.logger.Named("profile")}

	var stored *model.Profile
	switch {
	case a.Read(ctx, store.KeyProfile, &stored) && stored != nil:
		p.profile = *stored
	case seed != nil:
		p.profile = model.ProfileFromUser(*seed)
	}
	return p
}

// Profile returns the current profile.
func (p *Profile) Profile() model.Profile {
	return p.profile
}

// Update merges the provided fields and persists the whole profile.
func (p *Profile) Update(ctx context.Context, u model.ProfileUpdate) {
	p.profile = u.Apply(p.profile)
	p.persist(ctx)
}

// SetAvatar replaces the avatar data URL.
func (p *Profile) SetAvatar(ctx context.Context, dataURL string) {
	p.profile.Avatar = dataURL
	p.persist(ctx)
}

// InitializeFromUser seeds the profile from u unless the user has already
// filled it in. It reports whether the profile was seeded.
func (p *Profile) InitializeFromUser(ctx context.Context, u model.User) bool {
	if !p.profile.IsEmpty() {
		return false
	}
	p.profile = model.ProfileFromUser(u)
	p.persist(ctx)
	p.logger.Debug("seeded from user", zap.Int64("user_id", u.ID))
	return true
}

// Reset blanks every field and removes the stored profile.
func (p *Profile) Reset(ctx context.Context) {
	p.profile = model.Profile{}
	p.adapter.Remove(ctx, store.KeyProfile)
}

func (p *Profile) persist(ctx context.Context) {
	p.adapter.Write(ctx, store.KeyProfile, p.profile)
}
