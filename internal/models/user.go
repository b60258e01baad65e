package models

// User is a row of the users table. Authentication happens upstream; only identity and role are stored.
type User struct {
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	Role     string `db:"role"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
