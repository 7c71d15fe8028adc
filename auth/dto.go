// Data transfer objects for the auth HTTP surface.
package auth

// Auth actions accepted by POST /auth.
const (
	ActionRegister = "register"
	ActionLogin    = "login"
	ActionLogout   = "logout"
)

// AuthRequest represents the POST /auth request payload. Email and password
// are required for register and login, ignored for logout.
type AuthRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResponse represents the success response payload.
type AuthResponse struct {
	Success bool `json:"success"`
}
