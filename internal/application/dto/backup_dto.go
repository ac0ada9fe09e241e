package dto

import "time"

// BackupMetadata contadores del respaldo.
type BackupMetadata struct {
	TotalInvoices  int `json:"totalInvoices"`
	TotalUsers     int `json:"totalUsers"`
	TotalSuppliers int `json:"totalSuppliers"`
}

// ImportPreview resumen de lo que una importación va a reemplazar.
type ImportPreview struct {
	Format    string         `json:"format"`
	Incoming  BackupMetadata `json:"incoming"`
	Current   BackupMetadata `json:"current"`
	Applied   bool           `json:"applied"`
	AppliedAt *time.Time     `json:"appliedAt,omitempty"`
}
