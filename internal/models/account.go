package models

// Account is a student login record persisted in students.json.
//
// Passwords are stored in plaintext; the portal intentionally performs no
// hashing (see project notes). The username doubles as the join key to
// Profile and ResultEntry, matched case-insensitively.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
