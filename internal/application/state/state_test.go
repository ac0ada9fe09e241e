package state_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/infrastructure/memory"
)

type countingObserver struct{ failures int }

func (o *countingObserver) PersistFailed() { o.failures++ }

func TestUpdate_AplicaYPersiste(t *testing.T) {
	store := memory.NewDocumentStore(nil)
	ctl := state.NewController(store, nil)

	err := ctl.Update(context.Background(), func(ds *entity.Dataset) error {
		ds.Suppliers = append(ds.Suppliers, entity.Supplier{ID: "s1", Name: "Acme"})
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, ctl.Snapshot().Suppliers, 1)
	saved, _ := store.Load(context.Background())
	assert.Len(t, saved.Suppliers, 1)
	assert.Equal(t, uint64(1), ctl.Version())
}

func TestUpdate_ErrorNoAplicaNada(t *testing.T) {
	store := memory.NewDocumentStore(nil)
	ctl := state.NewController(store, nil)

	boom := errors.New("validación")
	err := ctl.Update(context.Background(), func(ds *entity.Dataset) error {
		ds.Users = append(ds.Users, entity.User{ID: "x"})
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, ctl.Snapshot().Users)
	assert.Equal(t, 0, store.Saves())
}

func TestUpdate_FalloDeGuardadoConservaMemoria(t *testing.T) {
	store := memory.NewDocumentStore(nil)
	store.SetFail(errors.New("disco lleno"))
	obs := &countingObserver{}
	ctl := state.NewController(store, nil).WithObserver(obs)

	err := ctl.Update(context.Background(), func(ds *entity.Dataset) error {
		ds.Invoices = append(ds.Invoices, entity.Invoice{ID: "n1"})
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Len(t, ctl.Snapshot().Invoices, 1, "el cambio queda en memoria")
	assert.Equal(t, 1, obs.failures)

	store.SetFail(nil)
	require.NoError(t, ctl.Flush(context.Background()))
	saved, _ := store.Load(context.Background())
	assert.Len(t, saved.Invoices, 1)
}

func TestSnapshot_EsIndependiente(t *testing.T) {
	initial := entity.NewDataset()
	initial.Users = append(initial.Users, entity.User{ID: "u1", Name: "Ana"})
	ctl := state.NewController(memory.NewDocumentStore(nil), initial)

	snap := ctl.Snapshot()
	snap.Users[0].Name = "cambiado"
	assert.Equal(t, "Ana", ctl.Snapshot().Users[0].Name)
}

func TestUpdate_Concurrente(t *testing.T) {
	store := memory.NewDocumentStore(nil)
	ctl := state.NewController(store, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ctl.Update(context.Background(), func(ds *entity.Dataset) error {
				ds.Invoices = append(ds.Invoices, entity.Invoice{})
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, ctl.Snapshot().Invoices, 50)
	saved, _ := store.Load(context.Background())
	assert.Len(t, saved.Invoices, 50, "el último guardado contiene todos los cambios")
}

func TestReplace(t *testing.T) {
	ctl := state.NewController(memory.NewDocumentStore(nil), nil)
	ds := entity.NewDataset()
	ds.Suppliers = []entity.Supplier{{ID: "a"}, {ID: "b"}}
	require.NoError(t, ctl.Replace(context.Background(), ds))
	assert.Len(t, ctl.Snapshot().Suppliers, 2)
}
