package backup

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

// Formatos de respaldo.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Version marca del respaldo estructurado.
const Version = "2.0"

// Tipos de registro del respaldo plano.
const (
	KindUser     = "USUARIO"
	KindSupplier = "FORNECEDOR"
	KindInvoice  = "NOTA"
)

const utf8BOM = "\ufeff"

// Layout posicional compartido: TIPO;ID;CAMPO1..CAMPO22 (24 columnas).
//
//	USUARIO     CAMPO1 nome, 2 login, 3 senha, 4 perfil, 5 setor, 6 e-mail de notificação
//	FORNECEDOR  CAMPO1 nome, 2 razão social, 3 cnpj, 4 endereço, 5 número, 6 complemento,
//	            7 bairro, 8 cidade, 9 uf, 10 cep, 11 e-mail de contato, 12 ativo
//	NOTA        CAMPO1 supplierId, 2 fornecedor, 3 cnpj, 4 nº nota, 5 emissão, 6 pedido, 7 valor,
//	            8 pdfUrl, 9 arquivo, 10 uploadedBy, 11 colaborador, 12 setor, 13 createdAt,
//	            14 observações, 15 status, 16 obs. admin, 17 gestor notificado, 18 resposta,
//	            19 tipo de vínculo, 20 e-mail do colaborador, 21 exportada, 22 e-mail de contato do fornecedor (informativo, no se importa)
//
// Las filas NOTA de respaldos anteriores terminan en CAMPO19 y siguen siendo válidas.
const (
	columns         = 24
	minUserCols     = 8
	minSupplierCols = 14
	minInvoiceCols  = 21
)

// Document es el respaldo estructurado.
type Document struct {
	Invoices   []entity.Invoice   `json:"invoices"`
	Users      []entity.User      `json:"users"`
	Suppliers  []entity.Supplier  `json:"suppliers"`
	Version    string             `json:"version"`
	ExportDate time.Time          `json:"exportDate"`
	Metadata   dto.BackupMetadata `json:"metadata"`
}

// Metadata cuenta los registros de un dataset.
func Metadata(ds *entity.Dataset) dto.BackupMetadata {
	return dto.BackupMetadata{
		TotalInvoices:  len(ds.Invoices),
		TotalUsers:     len(ds.Users),
		TotalSuppliers: len(ds.Suppliers),
	}
}

// EncodeJSON serializa el respaldo estructurado con sangría.
func EncodeJSON(ds *entity.Dataset, exportedAt time.Time) ([]byte, error) {
	ds = ds.Clone()
	doc := Document{
		Invoices:   ds.Invoices,
		Users:      ds.Users,
		Suppliers:  ds.Suppliers,
		Version:    Version,
		ExportDate: exportedAt.UTC(),
		Metadata:   Metadata(ds),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeCSV serializa el respaldo plano: BOM UTF-8, separador ";" y una fila por registro.
func EncodeCSV(ds *entity.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(header()); err != nil {
		return nil, err
	}
	for _, u := range ds.Users {
		if err := w.Write(pad([]string{
			KindUser, u.ID, u.Name, u.Email, u.Password, u.Role, u.Sector, u.NotificationEmail,
		})); err != nil {
			return nil, err
		}
	}
	for _, s := range ds.Suppliers {
		if err := w.Write(pad([]string{
			KindSupplier, s.ID, s.Name, s.LegalName, s.CNPJ, s.Street, s.Number, s.Complement,
			s.District, s.City, s.State, s.ZipCode, s.ContactEmail, strconv.FormatBool(s.Active),
		})); err != nil {
			return nil, err
		}
	}
	contacts := make(map[string]string, len(ds.Suppliers))
	for _, s := range ds.Suppliers {
		contacts[s.ID] = s.ContactEmail
	}
	for _, i := range ds.Invoices {
		if err := w.Write(pad([]string{
			KindInvoice, i.ID, i.SupplierID, i.SupplierName, i.SupplierCNPJ, i.InvoiceNumber,
			i.EmissionDate, i.OrderNumber, i.Value.String(), i.PdfURL, i.FileName, i.UploadedBy,
			i.UserName, i.UserSector, i.CreatedAt.UTC().Format(time.RFC3339Nano), i.Observations,
			i.Status, i.AdminObservations, i.ManagerNotifiedEmail, i.UserResponse, i.DocType,
			i.UserEmail, strconv.FormatBool(i.IsExported), contacts[i.SupplierID],
		})); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func header() []string {
	h := make([]string, 0, columns)
	h = append(h, "TIPO", "ID")
	for n := 1; n <= columns-2; n++ {
		h = append(h, "CAMPO"+strconv.Itoa(n))
	}
	return h
}

func pad(row []string) []string {
	for len(row) < columns {
		row = append(row, "")
	}
	return row
}

// DetectFormat decide el formato por el nombre del archivo o, si no lo indica, por el contenido.
func DetectFormat(filename string, content []byte) string {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".json"):
		return FormatJSON
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV
	}
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(content, []byte(utf8BOM)))
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatCSV
}

// Decode interpreta un respaldo completo. Cualquier registro inválido aborta todo.
func Decode(format string, content []byte) (*entity.Dataset, error) {
	content = toUTF8(content)
	var (
		ds  *entity.Dataset
		err error
	)
	switch format {
	case FormatJSON:
		ds, err = decodeJSON(content)
	case FormatCSV:
		ds, err = decodeCSV(content)
	default:
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidBackup, format)
	}
	if err != nil {
		return nil, err
	}
	if err := checkUniqueIDs(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// toUTF8 quita el BOM y transcodifica desde Windows-1252 cuando el contenido no es UTF-8 válido
// (planillas guardadas de nuevo por Excel).
func toUTF8(content []byte) []byte {
	content = bytes.TrimPrefix(content, []byte(utf8BOM))
	if utf8.Valid(content) {
		return content
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(content)
	if err != nil {
		return content
	}
	return out
}

func decodeJSON(content []byte) (*entity.Dataset, error) {
	var raw struct {
		Invoices  *[]entity.Invoice  `json:"invoices"`
		Users     *[]entity.User     `json:"users"`
		Suppliers *[]entity.Supplier `json:"suppliers"`
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: json: %v", domain.ErrInvalidBackup, err)
	}
	if raw.Invoices == nil || raw.Users == nil || raw.Suppliers == nil {
		return nil, fmt.Errorf("%w: o backup deve conter invoices, users e suppliers", domain.ErrInvalidBackup)
	}
	ds := &entity.Dataset{Invoices: *raw.Invoices, Users: *raw.Users, Suppliers: *raw.Suppliers}
	for n := range ds.Users {
		if err := checkUser(&ds.Users[n]); err != nil {
			return nil, fmt.Errorf("%w: users[%d]: %v", domain.ErrInvalidBackup, n, err)
		}
	}
	for n := range ds.Suppliers {
		if ds.Suppliers[n].ID == "" {
			return nil, fmt.Errorf("%w: suppliers[%d]: id vazio", domain.ErrInvalidBackup, n)
		}
	}
	for n := range ds.Invoices {
		if err := checkInvoice(&ds.Invoices[n]); err != nil {
			return nil, fmt.Errorf("%w: invoices[%d]: %v", domain.ErrInvalidBackup, n, err)
		}
	}
	return ds, nil
}

func decodeCSV(content []byte) (*entity.Dataset, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	ds := entity.NewDataset()
	records := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
		}
		records++
		line, _ := r.FieldPos(0)
		if records == 1 {
			if len(rec) < 2 || strings.TrimSpace(rec[0]) != "TIPO" || strings.TrimSpace(rec[1]) != "ID" {
				return nil, fmt.Errorf("%w: linha %d: cabeçalho TIPO;ID ausente", domain.ErrInvalidBackup, line)
			}
			continue
		}
		if err := decodeRow(ds, rec); err != nil {
			return nil, fmt.Errorf("%w: linha %d: %v", domain.ErrInvalidBackup, line, err)
		}
	}
	if records == 0 {
		return nil, fmt.Errorf("%w: arquivo vazio", domain.ErrInvalidBackup)
	}
	return ds, nil
}

func decodeRow(ds *entity.Dataset, p []string) error {
	kind := strings.TrimSpace(p[0])
	switch kind {
	case KindUser:
		if len(p) < minUserCols {
			return fmt.Errorf("%s com %d colunas, mínimo %d", kind, len(p), minUserCols)
		}
		u := entity.User{
			ID: p[1], Name: p[2], Email: p[3], Password: p[4], Role: p[5], Sector: p[6],
			NotificationEmail: p[7],
		}
		if err := checkUser(&u); err != nil {
			return err
		}
		ds.Users = append(ds.Users, u)
	case KindSupplier:
		if len(p) < minSupplierCols {
			return fmt.Errorf("%s com %d colunas, mínimo %d", kind, len(p), minSupplierCols)
		}
		active, err := parseBool(p[13])
		if err != nil {
			return fmt.Errorf("ativo: %v", err)
		}
		s := entity.Supplier{
			ID: p[1], Name: p[2], LegalName: p[3], CNPJ: p[4], Street: p[5], Number: p[6],
			Complement: p[7], District: p[8], City: p[9], State: p[10], ZipCode: p[11],
			ContactEmail: p[12], Active: active,
		}
		if s.ID == "" {
			return errors.New("id vazio")
		}
		ds.Suppliers = append(ds.Suppliers, s)
	case KindInvoice:
		inv, err := decodeInvoice(p)
		if err != nil {
			return err
		}
		ds.Invoices = append(ds.Invoices, inv)
	default:
		return fmt.Errorf("tipo de registro %q desconhecido", kind)
	}
	return nil
}

func decodeInvoice(p []string) (entity.Invoice, error) {
	if len(p) < minInvoiceCols {
		return entity.Invoice{}, fmt.Errorf("%s com %d colunas, mínimo %d", KindInvoice, len(p), minInvoiceCols)
	}
	value, err := parseValue(p[8])
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("valor %q: %v", p[8], err)
	}
	created, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(p[14]))
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("createdAt %q inválido", p[14])
	}
	inv := entity.Invoice{
		ID: p[1], SupplierID: p[2], SupplierName: p[3], SupplierCNPJ: p[4], InvoiceNumber: p[5],
		EmissionDate: p[6], OrderNumber: p[7], Value: value, PdfURL: p[9], FileName: p[10],
		UploadedBy: p[11], UserName: p[12], UserSector: p[13], CreatedAt: created,
		Observations: p[15], Status: p[16], AdminObservations: p[17],
		ManagerNotifiedEmail: p[18], UserResponse: p[19], DocType: p[20],
	}
	if len(p) > 21 {
		inv.UserEmail = p[21]
	}
	if len(p) > 22 {
		if inv.IsExported, err = parseBool(p[22]); err != nil {
			return entity.Invoice{}, fmt.Errorf("exportada: %v", err)
		}
	}
	if err := checkInvoice(&inv); err != nil {
		return entity.Invoice{}, err
	}
	return inv, nil
}

func checkUser(u *entity.User) error {
	if u.ID == "" {
		return errors.New("id vazio")
	}
	if !entity.ValidRole(u.Role) {
		return fmt.Errorf("perfil %q inválido", u.Role)
	}
	return nil
}

// checkInvoice valida estado y tipo; un tipo vacío (respaldos anteriores al campo) pasa a OSV.
func checkInvoice(inv *entity.Invoice) error {
	if inv.ID == "" {
		return errors.New("id vazio")
	}
	if !entity.ValidStatus(inv.Status) {
		return fmt.Errorf("status %q inválido", inv.Status)
	}
	if inv.DocType == "" {
		inv.DocType = entity.DocTypeOrder
	}
	if !entity.ValidDocType(inv.DocType) {
		return fmt.Errorf("tipo de vínculo %q inválido", inv.DocType)
	}
	return nil
}

func checkUniqueIDs(ds *entity.Dataset) error {
	seen := make(map[string]struct{})
	dup := func(kind, id string) error {
		key := kind + "\x00" + id
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s com id repetido %q", domain.ErrInvalidBackup, kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, u := range ds.Users {
		if err := dup(KindUser, u.ID); err != nil {
			return err
		}
	}
	for _, s := range ds.Suppliers {
		if err := dup(KindSupplier, s.ID); err != nil {
			return err
		}
	}
	for _, i := range ds.Invoices {
		if err := dup(KindInvoice, i.ID); err != nil {
			return err
		}
	}
	return nil
}

// parseValue acepta "1234.5" y también "1234,5" de planillas en pt-BR.
func parseValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "verdadeiro":
		return true, nil
	case "false", "falso", "":
		return false, nil
	}
	return false, fmt.Errorf("%q não é true/false", s)
}
