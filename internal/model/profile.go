package model

// Profile holds the editable profile fields. It is independent of User
// once seeded.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       string `json:"age"`
	Avatar    string `json:"avatar"`
}

// IsEmpty reports whether every field is blank.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// ProfileFromUser copies the profile-relevant fields of a user.
func ProfileFromUser(u User) Profile {
	return Profile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Avatar:    u.Avatar,
	}
}

// ProfileUpdate is a partial profile edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Age       *string
	Avatar    *string
}

// Apply merges the non-nil fields of u into p and returns the result.
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	return p
}
