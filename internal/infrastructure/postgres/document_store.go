package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DefaultDocumentID fila que guarda el documento del portal.
const DefaultDocumentID = "portal"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS portal_documents (
		id         TEXT PRIMARY KEY,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS portal_document_saves (
		id          BIGSERIAL PRIMARY KEY,
		document_id TEXT NOT NULL,
		saved_at    TIMESTAMPTZ NOT NULL,
		invoices    INTEGER NOT NULL,
		users       INTEGER NOT NULL,
		suppliers   INTEGER NOT NULL,
		total_value NUMERIC(18,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS portal_document_saves_doc_idx
		ON portal_document_saves (document_id, saved_at DESC)`,
}

// SaveRecord una entrada del historial de guardados.
type SaveRecord struct {
	SavedAt    time.Time
	Invoices   int
	Users      int
	Suppliers  int
	TotalValue decimal.Decimal
}

// DocumentStore guarda el dataset completo como JSONB en una sola fila.
// Cada Save sobrescribe la fila (la última escritura gana) y anota contadores en el historial.
type DocumentStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	id   string
}

// NewDocumentStore construye el adaptador. id vacío usa DefaultDocumentID.
func NewDocumentStore(pool *pgxpool.Pool, id string) *DocumentStore {
	if id == "" {
		id = DefaultDocumentID
	}
	return &DocumentStore{pool: pool, tx: NewTxRunner(pool), id: id}
}

// EnsureSchema crea las tablas si no existen.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}

// Load devuelve el documento; si todavía no existe devuelve uno vacío.
func (s *DocumentStore) Load(ctx context.Context) (*entity.Dataset, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `SELECT body FROM portal_documents WHERE id = $1`, s.id).Scan(&body)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return entity.NewDataset(), nil
	case isUndefinedTable(err):
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return entity.NewDataset(), nil
	case err != nil:
		return nil, fmt.Errorf("leer documento: %w", err)
	}

	ds := entity.NewDataset()
	if err := json.Unmarshal(body, ds); err != nil {
		return nil, fmt.Errorf("decodificar documento: %w", err)
	}
	ds.Normalize()
	return ds, nil
}

// Save sobrescribe el documento y registra el guardado en la misma transacción.
func (s *DocumentStore) Save(ctx context.Context, ds *entity.Dataset) error {
	body, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("codificar documento: %w", err)
	}
	total := decimal.Zero
	for _, inv := range ds.Invoices {
		total = total.Add(inv.Value)
	}
	now := time.Now().UTC()

	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO portal_documents (id, body, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
			s.id, body, now,
		)
		if err != nil {
			return fmt.Errorf("guardar documento: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO portal_document_saves (document_id, saved_at, invoices, users, suppliers, total_value)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			s.id, now, len(ds.Invoices), len(ds.Users), len(ds.Suppliers), total.Round(2),
		)
		if err != nil {
			return fmt.Errorf("registrar guardado: %w", err)
		}
		return nil
	})
}

// History devuelve los últimos guardados, del más reciente al más antiguo.
func (s *DocumentStore) History(ctx context.Context, limit int) ([]SaveRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT saved_at, invoices, users, suppliers, total_value
		FROM portal_document_saves
		WHERE document_id = $1
		ORDER BY saved_at DESC
		LIMIT $2`, s.id, limit)
	if err != nil {
		return nil, fmt.Errorf("listar historial: %w", err)
	}
	defer rows.Close()

	var out []SaveRecord
	for rows.Next() {
		var r SaveRecord
		if err := rows.Scan(&r.SavedAt, &r.Invoices, &r.Users, &r.Suppliers, &r.TotalValue); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
