package domain

// UserRole determines which back-office operations a user may perform.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleCasher UserRole = "casher"
)

// User represents a back-office user (an admin or a cashier).
type User struct {
	UserID   string   `json:"userID"` // Primary Key (UUID)
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	IsActive bool     `json:"isActive"`
	AuditFields
}
