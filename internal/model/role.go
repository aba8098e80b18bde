package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, SELLER, CUSTOMER
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin    = "ADMIN"
	RoleSeller   = "SELLER"
	RoleCustomer = "CUSTOMER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Platform Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleSeller,
		Name:        "Seller",
		Description: "Manages an organization's branches, catalog and orders",
	},
	{
		Code:        RoleCustomer,
		Name:        "Customer",
		Description: "Browses storefronts, carts items and places orders",
	},
}
