// Package access implementa el modelo de capacidades por rol y el alcance de visibilidad
// de las notas. Es puro: no conoce persistencia ni transporte.
package access

import "github.com/jhoicas/portal-notas/internal/domain/entity"

// Viewer es la identidad mínima necesaria para decidir permisos.
// Se arma desde el token (id, rol, setor) sin consultar el directorio.
type Viewer struct {
	ID     string
	Role   string
	Sector string
}

// ViewerOf construye un Viewer a partir de un usuario.
func ViewerOf(u *entity.User) Viewer {
	return Viewer{ID: u.ID, Role: u.Role, Sector: u.Sector}
}

// IsAdmin indica si el viewer tiene rol ADMIN.
func (v Viewer) IsAdmin() bool { return v.Role == entity.RoleAdmin }

// CanView aplica la regla de alcance:
//   - ADMIN: todas las notas.
//   - MANAGER: notas cuyo setor (fotografía) coincide con el suyo.
//   - USER: solo las notas que publicó.
//
// Un rol desconocido no ve nada.
func CanView(v Viewer, inv *entity.Invoice) bool {
	switch v.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleManager:
		return inv.UserSector == v.Sector
	case entity.RoleUser:
		return inv.UploadedBy == v.ID
	}
	return false
}

// Visible devuelve el subconjunto de invoices que v puede ver, conservando el orden.
func Visible(invoices []entity.Invoice, v Viewer) []entity.Invoice {
	out := make([]entity.Invoice, 0, len(invoices))
	for i := range invoices {
		if CanView(v, &invoices[i]) {
			out = append(out, invoices[i])
		}
	}
	return out
}

// CanEditInvoice: el administrador edita en cualquier estado; el resto solo notas visibles
// que aún no fueron recibidas.
func CanEditInvoice(v Viewer, inv *entity.Invoice) bool {
	if v.IsAdmin() {
		return true
	}
	return CanView(v, inv) && inv.Status != entity.StatusReceived
}

// CanChangeStatus indica si v puede recibir notas o apuntar pendencias.
func CanChangeStatus(v Viewer) bool { return v.IsAdmin() }

// CanDeleteInvoice indica si v puede eliminar notas.
func CanDeleteInvoice(v Viewer) bool { return v.IsAdmin() }

// CanManageUsers indica si v puede crear o editar usuarios.
func CanManageUsers(v Viewer) bool { return v.IsAdmin() }

// CanManageSuppliers indica si v puede crear o editar proveedores.
func CanManageSuppliers(v Viewer) bool { return v.IsAdmin() }

// CanExportDataset indica si v puede exportar o importar la base completa.
func CanExportDataset(v Viewer) bool { return v.IsAdmin() }
