package models

// Roles an account can carry. Registration always assigns RoleFamily;
// other roles are provisioned out of band.
const (
	RoleFamily = "family"
	RoleAdmin  = "admin"
)

// Account represents a row in the PostgreSQL accounts table.
type Account struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	PasswordDigest string `json:"-"` // never serialize
	Role           string `json:"role"`
	CreatedAt      int64  `json:"created_at"`
}

// View returns the public projection of the account sent to clients.
func (a Account) View() AccountView {
	return AccountView{ID: a.ID, Email: a.Email, Role: a.Role}
}

// AccountView is the client-facing shape of an account. The password
// digest and creation time stay server-side.
type AccountView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session represents a row in the PostgreSQL sessions table. Many
// sessions may reference one account (one per device/login).
type Session struct {
	ID        string
	AccountID string
	ExpiresAt int64
	CreatedAt int64
}

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
