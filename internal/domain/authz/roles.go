package authz

import "strings"

// Nombres de rol sembrados.
const (
	RoleSuperAdmin     = "Super Admin"
	RoleAdminManager   = "Admin Manager"
	RoleSalesExecutive = "Sales Executive"
	RoleAccountant     = "Accountant"
	RoleInventoryStaff = "Inventory Staff"
)

// LegacyRoleNames renombres de instalaciones anteriores: nombre viejo → nombre actual.
var LegacyRoleNames = map[string]string{
	"Admin": RoleSuperAdmin,
	"User":  RoleSalesExecutive,
}

// RoleNames roles en orden de siembra.
var RoleNames = []string{
	RoleSuperAdmin,
	RoleAdminManager,
	RoleSalesExecutive,
	RoleAccountant,
	RoleInventoryStaff,
}

// DefaultMatrix permisos de cada rol sembrado.
func DefaultMatrix() map[string][]Permission {
	adminManager := make([]Permission, 0, len(Definitions))
	for _, p := range All() {
		if p == ManageUsers || p == SystemSettings {
			continue
		}
		adminManager = append(adminManager, p)
	}
	return map[string][]Permission{
		RoleSuperAdmin:   All(),
		RoleAdminManager: adminManager,
		RoleSalesExecutive: {
			ViewDashboard, ViewSales, CreateSale, ViewInventory, ViewCustomersSuppliers,
		},
		RoleAccountant: {
			ViewDashboard, ViewDashboardFinancial, ViewSales, ViewPurchases, ViewReports,
			ViewProfit, ViewLedger, ExportLedger, ManagePayments, ViewCustomersSuppliers,
		},
		RoleInventoryStaff: {
			ViewDashboard, ViewInventory, ViewPurchases, CreatePurchase,
		},
	}
}

// selfRegistration roles elegibles al registrarse (Super Admin queda fuera).
var selfRegistration = []string{
	RoleAdminManager,
	RoleSalesExecutive,
	RoleAccountant,
	RoleInventoryStaff,
}

// SelfRegistrationRoles copia de la lista permitida.
func SelfRegistrationRoles() []string {
	return append([]string(nil), selfRegistration...)
}

// CanSelfRegister indica si el rol está en la lista permitida; devuelve el nombre canónico.
func CanSelfRegister(role string) (string, bool) {
	role = strings.TrimSpace(role)
	for _, r := range selfRegistration {
		if strings.EqualFold(r, role) {
			return r, true
		}
	}
	return "", false
}
