package identity

import (
	"strings"

	"github.com/stockmaster/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role gates what a user may do. Master-data writes and workflow approvals
// require inventory_manager or admin; staff can read and drive pick/pack.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleInventoryManager Role = "inventory_manager"
	RoleStaff            Role = "staff"
)

// IsValid returns true if the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleInventoryManager, RoleStaff:
		return true
	}
	return false
}

// CanManageInventory reports whether the role may mutate master data and
// fire terminal workflow transitions
func (r Role) CanManageInventory() bool {
	return r == RoleAdmin || r == RoleInventoryManager
}

// User is an authenticated actor of the system
type User struct {
	shared.BaseEntity
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200);not null"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(30);not null;default:'staff'"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(email, name, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Deactivate disables the account without deleting it
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}
