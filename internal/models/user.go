package models

// User is a registered account. Records are immutable after signup —
// there is no update or delete path.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}
