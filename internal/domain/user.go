package domain

import "time"

// User is the view of an auth user exposed to the application. IsAdmin mirrors
// the is_admin flag of the user's app metadata.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}

// Active reports whether the user has signed in at least once.
func (u User) Active() bool {
	return u.LastSignInAt != nil
}
