// Package supplier mantiene el catálogo de fornecedores y la consulta de CNPJ.
package supplier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/pkg/cnpj"
)

// SupplierUseCase lectura abierta a todos los roles; escritura solo ADMIN.
type SupplierUseCase struct {
	state    *state.Controller
	registry ports.SupplierRegistry
}

// NewSupplierUseCase construye el caso de uso. registry puede ser nil (consulta deshabilitada).
func NewSupplierUseCase(st *state.Controller, registry ports.SupplierRegistry) *SupplierUseCase {
	return &SupplierUseCase{state: st, registry: registry}
}

// List devuelve los fornecedores cuyo nombre, razón social o CNPJ contienen q.
func (uc *SupplierUseCase) List(ctx context.Context, q string, activeOnly bool) []entity.Supplier {
	ds := uc.state.Snapshot()
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q))
	digits := cnpj.Digits(q)
	out := make([]entity.Supplier, 0, len(ds.Suppliers))
	for _, s := range ds.Suppliers {
		if activeOnly && !s.Active {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(s.Name), needle) &&
			!strings.Contains(fold.String(s.LegalName), needle) &&
			!strings.Contains(s.CNPJ, needle) &&
			(digits == "" || !strings.Contains(cnpj.Digits(s.CNPJ), digits)) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Get devuelve un fornecedor por id.
func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	ds := uc.state.Snapshot()
	idx := ds.SupplierIndex(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	s := ds.Suppliers[idx]
	return &s, nil
}

// Create registra un fornecedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, v access.Viewer, in dto.SupplierRequest) (*entity.Supplier, error) {
	if !access.CanManageSuppliers(v) {
		return nil, domain.ErrForbidden
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	s := entity.Supplier{ID: uuid.New().String(), Active: true}
	apply(&s, in)
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		ds.Suppliers = append(ds.Suppliers, s)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	log.Info().Str("supplier_id", s.ID).Str("cnpj", s.CNPJ).Msg("fornecedor registrado")
	return &s, err
}

// Update reemplaza los datos de un fornecedor existente.
func (uc *SupplierUseCase) Update(ctx context.Context, v access.Viewer, id string, in dto.SupplierRequest) (*entity.Supplier, error) {
	if !access.CanManageSuppliers(v) {
		return nil, domain.ErrForbidden
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	var out entity.Supplier
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		idx := ds.SupplierIndex(id)
		if idx < 0 {
			return domain.ErrNotFound
		}
		apply(&ds.Suppliers[idx], in)
		out = ds.Suppliers[idx]
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	return &out, err
}

// Lookup consulta el registro público. Un fallo externo se informa como ErrExternalService
// para que el administrador complete los datos a mano.
func (uc *SupplierUseCase) Lookup(ctx context.Context, v access.Viewer, number string) (*dto.RegistryRecord, error) {
	if !access.CanManageSuppliers(v) {
		return nil, domain.ErrForbidden
	}
	digits := cnpj.Digits(number)
	if len(digits) != cnpj.Len {
		return nil, fmt.Errorf("%w: digite um CNPJ válido de 14 dígitos", domain.ErrInvalidInput)
	}
	if uc.registry == nil {
		return nil, fmt.Errorf("%w: consulta de CNPJ deshabilitada", domain.ErrExternalService)
	}
	rec, err := uc.registry.LookupCNPJ(ctx, digits)
	if err != nil {
		log.Warn().Err(err).Str("cnpj", digits).Msg("consulta de CNPJ fallida")
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	return rec, nil
}

// MergeLookup completa el formulario con los datos del registro. El CNPJ y el email de
// contacto del formulario se conservan.
func MergeLookup(form dto.SupplierRequest, rec dto.RegistryRecord) dto.SupplierRequest {
	form.Name = rec.Name
	form.LegalName = rec.LegalName
	form.Street = rec.Street
	form.Number = rec.Number
	form.Complement = rec.Complement
	form.District = rec.District
	form.City = rec.City
	form.State = rec.State
	form.ZipCode = rec.ZipCode
	return form
}

func validate(in dto.SupplierRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.LegalName) == "" {
		return fmt.Errorf("%w: nome e razão social são obrigatórios", domain.ErrInvalidInput)
	}
	if len(cnpj.Digits(in.CNPJ)) != cnpj.Len {
		return fmt.Errorf("%w: CNPJ deve ter 14 dígitos", domain.ErrInvalidInput)
	}
	if in.ContactEmail != "" && !strings.Contains(in.ContactEmail, "@") {
		return fmt.Errorf("%w: email de contato inválido", domain.ErrInvalidInput)
	}
	return nil
}

func apply(s *entity.Supplier, in dto.SupplierRequest) {
	s.Name = strings.TrimSpace(in.Name)
	s.LegalName = strings.TrimSpace(in.LegalName)
	s.CNPJ = cnpj.Format(in.CNPJ)
	s.Street = in.Street
	s.Number = in.Number
	s.Complement = in.Complement
	s.District = in.District
	s.City = in.City
	s.State = strings.ToUpper(in.State)
	s.ZipCode = in.ZipCode
	s.ContactEmail = strings.TrimSpace(in.ContactEmail)
	if in.Active != nil {
		s.Active = *in.Active
	}
}
