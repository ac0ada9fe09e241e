package entity

// Supplier representa un proveedor (fornecedor) registrado. El CNPJ no es único a nivel
// de almacenamiento; la deduplicación queda a cargo del administrador.
type Supplier struct {
	ID           string `json:"id"`
	Name         string `json:"name"`        // nome fantasia
	LegalName    string `json:"razaoSocial"` // razão social
	CNPJ         string `json:"cnpj"`
	Street       string `json:"endereco"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	District     string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"uf"`
	ZipCode      string `json:"cep"`
	ContactEmail string `json:"contactEmail,omitempty"`
	Active       bool   `json:"active"`
}
