package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Organization / branch management
	{Code: "organization:view", Name: "View Organization"},
	{Code: "organization:update", Name: "Update Organization"},
	{Code: "branch:manage", Name: "Manage Branches"},
	{Code: "hours:manage", Name: "Manage Branch Hours"},
	// Catalog management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Orders
	{Code: "order:view", Name: "View Order"},
	{Code: "order:update_status", Name: "Update Order Status"},
	// Cart / checkout (customer-facing)
	{Code: "cart:use", Name: "Use Cart"},
	{Code: "order:place", Name: "Place Order"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// SellerPrivilegeCodes are the privileges granted to the SELLER role.
var SellerPrivilegeCodes = []string{
	"organization:view", "organization:update", "branch:manage", "hours:manage",
	"product:view", "product:create", "product:update", "product:delete",
	"order:view", "order:update_status", "dashboard:view",
}

// CustomerPrivilegeCodes are the privileges granted to the CUSTOMER role.
var CustomerPrivilegeCodes = []string{
	"product:view", "cart:use", "order:place", "order:view",
}
