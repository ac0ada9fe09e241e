package dto

// SupplierRequest alta o edición de fornecedor. Active nil = activo al crear, sin cambio al editar.
type SupplierRequest struct {
	Name         string `json:"name"`
	LegalName    string `json:"razaoSocial"`
	CNPJ         string `json:"cnpj"`
	Street       string `json:"endereco"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	District     string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"uf"`
	ZipCode      string `json:"cep"`
	ContactEmail string `json:"contactEmail"`
	Active       *bool  `json:"active"`
}

// RegistryRecord datos públicos de un CNPJ devueltos por el registro externo.
type RegistryRecord struct {
	CNPJ       string `json:"cnpj"`
	Name       string `json:"name"`
	LegalName  string `json:"razaoSocial"`
	Street     string `json:"endereco"`
	Number     string `json:"numero"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	State      string `json:"uf"`
	ZipCode    string `json:"cep"`
}

// SupplierLookupResponse resultado de la consulta de CNPJ. Si el registro no responde,
// Found es false y el formulario se completa a mano.
type SupplierLookupResponse struct {
	Found   bool            `json:"found"`
	Record  *RegistryRecord `json:"record,omitempty"`
	Message string          `json:"message,omitempty"`
}
