package rbac

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// EmployeeRoleRow dan RolePermissionRow dibaca lewat Scan; dua struct di
// bawah ini hanya untuk migrasi tabel relasinya.
type EmployeeRole struct {
	EmployeeID string `gorm:"type:uuid;primaryKey"`
	RoleID     string `gorm:"type:uuid;primaryKey"`
}

func (EmployeeRole) TableName() string { return "employee_roles" }

type RolePermission struct {
	RoleID       string `gorm:"type:uuid;primaryKey"`
	PermissionID string `gorm:"type:uuid;primaryKey"`
}

func (RolePermission) TableName() string { return "role_permissions" }

type PermissionSeed struct {
	Resource string
	Action   string
	Category string
}

var DefaultPermissions = []PermissionSeed{
	{"employee", "read", "Employee"},
	{"employee", "create", "Employee"},
	{"employee", "update", "Employee"},
	{"employee", "delete", "Employee"},
	{"department", "read", "Organization"},
	{"department", "create", "Organization"},
	{"department", "delete", "Organization"},
	{"position", "read", "Organization"},
	{"position", "create", "Organization"},
	{"position", "delete", "Organization"},
	{"salary_component", "read", "Payroll"},
	{"salary_component", "manage", "Payroll"},
	{"salary", "read", "Payroll"},
	{"salary", "update", "Payroll"},
	{"payroll", "read", "Payroll"},
	{"payroll", "create", "Payroll"},
	{"payroll", "process", "Payroll"},
	{"payroll", "delete", "Payroll"},
	{"payslip", "read_any", "Payslip"},
	{"payslip", "read_own", "Payslip"},
	{"payslip", "create", "Payslip"},
	{"role", "read", "Access"},
}

// SeedPermissions memastikan katalog permission ada; permission yang sudah
// tersimpan tidak diubah.
func SeedPermissions(db *gorm.DB) error {
	title := cases.Title(language.English)
	for _, p := range DefaultPermissions {
		label := title.String(strings.ReplaceAll(p.Action+" "+p.Resource, "_", " "))
		// ID baru hanya dipakai saat insert; lookup murni by resource+action
		var row PermissionRow
		err := db.
			Where(PermissionRow{Resource: p.Resource, Action: p.Action}).
			Attrs(PermissionRow{ID: uuid.NewString(), Label: label, Category: p.Category}).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
