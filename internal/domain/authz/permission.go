// Package authz define los permisos del sistema como un conjunto cerrado y la
// matriz rol → permisos que siembra el arranque.
package authz

import (
	"sort"
	"strings"
)

// Permission identificador de capacidad. El valor es el nombre persistido en la tabla permissions.
type Permission string

const (
	ViewDashboard          Permission = "view_dashboard"
	ViewDashboardFinancial Permission = "view_dashboard_financial"
	ViewSales              Permission = "view_sales"
	CreateSale             Permission = "create_sale"
	EditSale               Permission = "edit_sale"
	DeleteSale             Permission = "delete_sale"
	ViewPurchases          Permission = "view_purchases"
	CreatePurchase         Permission = "create_purchase"
	EditPurchase           Permission = "edit_purchase"
	DeletePurchase         Permission = "delete_purchase"
	ViewInventory          Permission = "view_inventory"
	ManageInventory        Permission = "manage_inventory"
	ViewReports            Permission = "view_reports"
	ViewProfit             Permission = "view_profit"
	ViewLedger             Permission = "view_ledger"
	ExportLedger           Permission = "export_ledger"
	ManagePayments         Permission = "manage_payments"
	ViewCustomersSuppliers Permission = "view_customers_suppliers"
	ManageUsers            Permission = "manage_users"
	SystemSettings         Permission = "system_settings"
)

// Definition permiso con su descripción para la siembra.
type Definition struct {
	Permission  Permission
	Description string
}

// Definitions catálogo completo en orden estable.
var Definitions = []Definition{
	{ViewDashboard, "Ver el panel principal"},
	{ViewDashboardFinancial, "Ver cifras financieras del panel"},
	{ViewSales, "Ver ventas"},
	{CreateSale, "Registrar ventas"},
	{EditSale, "Editar ventas"},
	{DeleteSale, "Eliminar ventas"},
	{ViewPurchases, "Ver compras"},
	{CreatePurchase, "Registrar compras"},
	{EditPurchase, "Editar compras"},
	{DeletePurchase, "Eliminar compras"},
	{ViewInventory, "Ver inventario"},
	{ManageInventory, "Gestionar categorías y baldosas"},
	{ViewReports, "Ver reportes de categorías y baldosas"},
	{ViewProfit, "Ver utilidad"},
	{ViewLedger, "Ver libro mayor por empresa"},
	{ExportLedger, "Exportar libro mayor"},
	{ManagePayments, "Gestionar pagos"},
	{ViewCustomersSuppliers, "Ver clientes y proveedores"},
	{ManageUsers, "Gestionar usuarios y roles"},
	{SystemSettings, "Configuración del sistema"},
}

var byName = func() map[string]Permission {
	m := make(map[string]Permission, len(Definitions))
	for _, d := range Definitions {
		m[string(d.Permission)] = d.Permission
	}
	return m
}()

// All todos los permisos conocidos.
func All() []Permission {
	out := make([]Permission, 0, len(Definitions))
	for _, d := range Definitions {
		out = append(out, d.Permission)
	}
	return out
}

// Parse resuelve un nombre sin distinguir mayúsculas ni espacios alrededor.
func Parse(name string) (Permission, bool) {
	p, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Set conjunto de permisos de una identidad.
type Set map[Permission]struct{}

// NewSet construye el conjunto a partir de permisos tipados.
func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// ParseSet construye el conjunto desde nombres (claims, filas de BD). Los desconocidos se descartan.
func ParseSet(names []string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		if p, ok := Parse(n); ok {
			s[p] = struct{}{}
		}
	}
	return s
}

// Has prueba de pertenencia.
func (s Set) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Names nombres ordenados, para serializar en el token.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
