package entity

// Dataset es el documento completo que guarda el gateway de persistencia.
type Dataset struct {
	Invoices  []Invoice  `json:"invoices"`
	Users     []User     `json:"users"`
	Suppliers []Supplier `json:"suppliers"`
}

// NewDataset devuelve un documento vacío con colecciones no nulas.
func NewDataset() *Dataset {
	return &Dataset{Invoices: []Invoice{}, Users: []User{}, Suppliers: []Supplier{}}
}

// Clone copia las tres colecciones; los registros son valores, por lo que la copia es independiente.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return NewDataset()
	}
	out := &Dataset{
		Invoices:  make([]Invoice, len(d.Invoices)),
		Users:     make([]User, len(d.Users)),
		Suppliers: make([]Supplier, len(d.Suppliers)),
	}
	copy(out.Invoices, d.Invoices)
	copy(out.Users, d.Users)
	copy(out.Suppliers, d.Suppliers)
	return out
}

// Normalize reemplaza colecciones nulas por vacías (documentos antiguos o parciales).
func (d *Dataset) Normalize() {
	if d.Invoices == nil {
		d.Invoices = []Invoice{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Suppliers == nil {
		d.Suppliers = []Supplier{}
	}
}

// InvoiceIndex devuelve la posición de la nota con ese id o -1.
func (d *Dataset) InvoiceIndex(id string) int {
	for i := range d.Invoices {
		if d.Invoices[i].ID == id {
			return i
		}
	}
	return -1
}

// UserIndex devuelve la posición del usuario con ese id o -1.
func (d *Dataset) UserIndex(id string) int {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// SupplierIndex devuelve la posición del proveedor con ese id o -1.
func (d *Dataset) SupplierIndex(id string) int {
	for i := range d.Suppliers {
		if d.Suppliers[i].ID == id {
			return i
		}
	}
	return -1
}
