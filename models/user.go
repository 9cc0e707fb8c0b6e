package models

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// CanManageCatalog reports whether the role may add, edit or delete
// products and categories. Every mutating catalog route checks this in
// one place instead of each screen gating itself.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// CanManageUsers reports whether the role may open the user management
// screen at all.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// User represents an account that can sign in to the catalog.
// Passwords are compared as plain text against the stored value.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Login    string `gorm:"uniqueIndex;not null" json:"login"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"not null" json:"role"`
	FullName string `gorm:"not null" json:"full_name"`
}

func (u *User) TableName() string {
	return "users"
}
