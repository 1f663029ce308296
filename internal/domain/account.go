package domain

import "time"

// User is the authentication record behind a profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile holds the user's public and personal details.
type Profile struct {
	ID          string
	Email       string
	Username    string
	AvatarURL   string
	Mood        string
	Status      string
	FirstName   string
	LastName    string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileUpdate carries the optional fields a user may change. Nil fields are left untouched.
type ProfileUpdate struct {
	Username    *string
	AvatarURL   *string
	Mood        *string
	Status      *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// Empty reports whether no field was supplied.
func (u ProfileUpdate) Empty() bool {
	return u.Username == nil && u.AvatarURL == nil && u.Mood == nil && u.Status == nil &&
		u.FirstName == nil && u.LastName == nil && u.PhoneNumber == nil
}

// Apply copies supplied fields onto p.
func (u ProfileUpdate) Apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Username, u.Username)
	set(&p.AvatarURL, u.AvatarURL)
	set(&p.Mood, u.Mood)
	set(&p.Status, u.Status)
	set(&p.FirstName, u.FirstName)
	set(&p.LastName, u.LastName)
	set(&p.PhoneNumber, u.PhoneNumber)
}

// Session is returned after a successful signup or signin.
type Session struct {
	User      User
	Profile   Profile
	Token     string
	ExpiresAt time.Time
}
