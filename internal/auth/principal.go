package auth

// AdminUserID is the sentinel subject identity of the single admin principal.
// It never collides with end-user ids, which start at 1.
const AdminUserID uint = 0

// Principal is the authenticated identity resolved from a valid credential.
// It is rebuilt from the token on every request and never persisted.
type Principal struct {
	ID       uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}
