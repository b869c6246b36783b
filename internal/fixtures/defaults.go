package fixtures

import (
	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT PERMISSIONS
// ==========================================

// GetDefaultPermissions returns the permission matrix. Codenames follow
// the module.action convention the route guards check against.
func GetDefaultPermissions() []rbac.Permission {
	return []rbac.Permission{
		// User management
		{Name: "View users", Codename: "user.view", Module: "user", Action: "view"},
		{Name: "Manage users", Codename: "user.manage", Module: "user", Action: "manage"},

		// Roles and permissions
		{Name: "Manage roles", Codename: "role.manage", Module: "role", Action: "manage"},

		// Attendance
		{Name: "View attendance", Codename: "attendance.view", Module: "attendance", Action: "view"},
		{Name: "Manage attendance", Codename: "attendance.manage", Module: "attendance", Action: "manage"},

		// Catalog
		{Name: "View catalog", Codename: "catalog.view", Module: "catalog", Action: "view"},
		{Name: "Manage catalog", Codename: "catalog.manage", Module: "catalog", Action: "manage"},

		// Orders
		{Name: "View orders", Codename: "order.view", Module: "order", Action: "view"},
		{Name: "Create orders", Codename: "order.create", Module: "order", Action: "create"},
		{Name: "Manage orders", Codename: "order.manage", Module: "order", Action: "manage"},

		// Payroll
		{Name: "View payroll", Codename: "payroll.view", Module: "payroll", Action: "view"},
		{Name: "Calculate payroll", Codename: "payroll.calculate", Module: "payroll", Action: "calculate"},
		{Name: "Approve payroll", Codename: "payroll.approve", Module: "payroll", Action: "approve"},
		{Name: "Manage salary configurations", Codename: "payroll.config", Module: "payroll", Action: "config"},
	}
}

// ==========================================
// DEFAULT ROLES
// ==========================================

func GetDefaultRoles() []rbac.Role {
	return []rbac.Role{
		{
			Name:        "Admin",
			Slug:        "admin",
			Description: "Full system access",
			Level:       rbac.LevelAdmin,
			IsSystem:    true,
			IsActive:    true,
		},
		{
			Name:        "Manager",
			Slug:        "manager",
			Description: "Store manager, approves payroll and oversees sales",
			Level:       rbac.LevelManager,
			IsSystem:    true,
			IsActive:    true,
		},
		{
			Name:        "Accountant",
			Slug:        "accountant",
			Description: "Runs payroll and tracks payments",
			Level:       rbac.LevelStaff,
			IsSystem:    true,
			IsActive:    true,
		},
		{
			Name:        "Salesperson",
			Slug:        "salesperson",
			Description: "Counter sales and customer orders",
			Level:       rbac.LevelStaff,
			IsSystem:    true,
			IsActive:    true,
		},
		{
			Name:        "Warehouse",
			Slug:        "warehouse",
			Description: "Stock intake and inventory counts",
			Level:       rbac.LevelStaff,
			IsSystem:    true,
			IsActive:    true,
		},
	}
}

// GetDefaultRolePermissions maps role slugs to permission codenames.
// "*" grants everything.
func GetDefaultRolePermissions() map[string][]string {
	return map[string][]string{
		"admin": {"*"},
		"manager": {
			"user.view",
			"attendance.view", "attendance.manage",
			"catalog.view", "catalog.manage",
			"order.view", "order.create", "order.manage",
			"payroll.view", "payroll.calculate", "payroll.approve",
		},
		"accountant": {
			"user.view",
			"attendance.view", "attendance.manage",
			"order.view",
			"payroll.view", "payroll.calculate",
		},
		"salesperson": {
			"catalog.view",
			"order.view", "order.create", "order.manage",
		},
		"warehouse": {
			"catalog.view", "catalog.manage",
			"order.view",
		},
	}
}

// ==========================================
// DEFAULT SALARY CONFIGURATIONS
// ==========================================

// GetDefaultSalaryConfigs returns starter configurations keyed by role
// slug. Role IDs are resolved at seed time.
func GetDefaultSalaryConfigs() map[string]payroll.SalaryConfiguration {
	return map[string]payroll.SalaryConfiguration{
		"salesperson": {
			BaseSalary:              decimal.NewFromInt(8000000),
			StandardWorkingDays:     26,
			AttendanceAllowance:     decimal.NewFromInt(500000),
			TransportationAllowance: decimal.NewFromInt(300000),
			MealAllowance:           decimal.NewFromInt(750000),
			PhoneAllowance:          decimal.NewFromInt(200000),
			EnableCommission:        true,
			CommissionRate1:         decimal.NewFromFloat(1.0),
			CommissionThreshold2:    decimal.NewFromInt(20000000),
			CommissionRate2:         decimal.NewFromFloat(1.5),
			CommissionThreshold3:    decimal.NewFromInt(50000000),
			CommissionRate3:         decimal.NewFromFloat(2.0),
			CommissionThreshold4:    decimal.NewFromInt(100000000),
			CommissionRate4:         decimal.NewFromFloat(2.5),
			KPIBonusAmount:          decimal.NewFromInt(1000000),
			SocialInsuranceRate:     decimal.NewFromInt(8),
			HealthInsuranceRate:     decimal.NewFromFloat(1.5),

			UnemploymentInsuranceRate: decimal.NewFromInt(1),
			IsActive:                  true,
		},
		"accountant": {
			BaseSalary:              decimal.NewFromInt(10000000),
			StandardWorkingDays:     26,
			AttendanceAllowance:     decimal.NewFromInt(500000),
			TransportationAllowance: decimal.NewFromInt(300000),
			MealAllowance:           decimal.NewFromInt(750000),
			PhoneAllowance:          decimal.NewFromInt(200000),
			EnableCommission:        false,
			KPIBonusAmount:          decimal.NewFromInt(1000000),
			SocialInsuranceRate:     decimal.NewFromInt(8),
			HealthInsuranceRate:     decimal.NewFromFloat(1.5),

			UnemploymentInsuranceRate: decimal.NewFromInt(1),
			IsActive:                  true,
		},
		"warehouse": {
			BaseSalary:              decimal.NewFromInt(7000000),
			StandardWorkingDays:     26,
			AttendanceAllowance:     decimal.NewFromInt(500000),
			TransportationAllowance: decimal.NewFromInt(300000),
			MealAllowance:           decimal.NewFromInt(750000),
			PhoneAllowance:          decimal.NewFromInt(100000),
			EnableCommission:        false,
			KPIBonusAmount:          decimal.NewFromInt(800000),
			SocialInsuranceRate:     decimal.NewFromInt(8),
			HealthInsuranceRate:     decimal.NewFromFloat(1.5),

			UnemploymentInsuranceRate: decimal.NewFromInt(1),
			IsActive:                  true,
		},
		"manager": {
			BaseSalary:              decimal.NewFromInt(15000000),
			StandardWorkingDays:     26,
			AttendanceAllowance:     decimal.NewFromInt(1000000),
			TransportationAllowance: decimal.NewFromInt(500000),
			MealAllowance:           decimal.NewFromInt(1000000),
			PhoneAllowance:          decimal.NewFromInt(500000),
			EnableCommission:        true,
			CommissionRate1:         decimal.NewFromFloat(0.5),
			CommissionThreshold2:    decimal.NewFromInt(20000000),
			CommissionRate2:         decimal.NewFromFloat(0.75),
			CommissionThreshold3:    decimal.NewFromInt(50000000),
			CommissionRate3:         decimal.NewFromFloat(1.0),
			CommissionThreshold4:    decimal.NewFromInt(100000000),
			CommissionRate4:         decimal.NewFromFloat(1.5),
			KPIBonusAmount:          decimal.NewFromInt(2000000),
			SocialInsuranceRate:     decimal.NewFromInt(8),
			HealthInsuranceRate:     decimal.NewFromFloat(1.5),

			UnemploymentInsuranceRate: decimal.NewFromInt(1),
			IsActive:                  true,
		},
	}
}

// ==========================================
// DEFAULT CATALOG
// ==========================================

func GetDefaultCategories() []catalog.Category {
	return []catalog.Category{
		{Name: "Fresh Fish", IsActive: true},
		{Name: "Shrimp", IsActive: true},
		{Name: "Shellfish", IsActive: true},
		{Name: "Squid & Octopus", IsActive: true},
		{Name: "Dried Seafood", IsActive: true},
	}
}

// GetDefaultProducts returns starter products keyed by category name.
func GetDefaultProducts() map[string][]catalog.Product {
	return map[string][]catalog.Product{
		"Fresh Fish": {
			{SKU: "FISH-001", Name: "Sea Bass", Unit: "kg", UnitPrice: decimal.NewFromInt(180000), StockQty: decimal.NewFromInt(50), IsActive: true},
			{SKU: "FISH-002", Name: "Red Snapper", Unit: "kg", UnitPrice: decimal.NewFromInt(220000), StockQty: decimal.NewFromInt(40), IsActive: true},
			{SKU: "FISH-003", Name: "Mackerel", Unit: "kg", UnitPrice: decimal.NewFromInt(90000), StockQty: decimal.NewFromInt(80), IsActive: true},
		},
		"Shrimp": {
			{SKU: "SHRIMP-XL", Name: "Black Tiger Shrimp XL", Unit: "kg", UnitPrice: decimal.NewFromInt(350000), StockQty: decimal.NewFromInt(30), IsActive: true},
			{SKU: "SHRIMP-M", Name: "White Shrimp M", Unit: "kg", UnitPrice: decimal.NewFromInt(190000), StockQty: decimal.NewFromInt(60), IsActive: true},
		},
		"Shellfish": {
			{SKU: "CLAM-001", Name: "White Clam", Unit: "kg", UnitPrice: decimal.NewFromInt(60000), StockQty: decimal.NewFromInt(100), IsActive: true},
			{SKU: "OYS-001", Name: "Pacific Oyster", Unit: "kg", UnitPrice: decimal.NewFromInt(120000), StockQty: decimal.NewFromInt(45), IsActive: true},
		},
		"Squid & Octopus": {
			{SKU: "SQ-001", Name: "Fresh Squid", Unit: "kg", UnitPrice: decimal.NewFromInt(160000), StockQty: decimal.NewFromInt(55), IsActive: true},
		},
		"Dried Seafood": {
			{SKU: "DRY-001", Name: "Dried Anchovy", Unit: "kg", UnitPrice: decimal.NewFromInt(250000), StockQty: decimal.NewFromInt(25), IsActive: true},
		},
	}
}
