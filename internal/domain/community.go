package domain

import "time"

// Post is a message shared with the community feed.
type Post struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// Cursor models the feed pagination token.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// BetaSignup is an early-access request submitted from the landing page.
type BetaSignup struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
