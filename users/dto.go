package users

import "time"

// Profile is the public view of a user account. The password hash never
// appears here.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
