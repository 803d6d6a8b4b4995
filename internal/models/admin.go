package models

// AdminDB represents an administrator record. Admins live in their own
// table and are created only through the provisioning CLI, never over
// the network.
type AdminDB struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}
