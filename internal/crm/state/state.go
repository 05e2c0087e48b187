// Package state implements the in-memory domain state: the session mirror
// of the persisted customer, product and settings blobs. It is the single
// source of truth for all views; every mutation replaces one in-memory
// blob and re-serializes it to the store whole.
package state

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/store"
)

// State is the owned domain state handle passed to every component.
// There are no ambient singletons; each blob is guarded by its own lock
// since the whole blob is always replaced atomically.
type State struct {
	store *store.Store

	customersMu sync.RWMutex
	customers   []crm.Customer

	productsMu sync.RWMutex
	products   crm.ProductCounters

	settingsMu sync.RWMutex
	settings   crm.Settings
}

// Open creates a State bound to the given store and loads all three
// blobs. Settings defaults are written on first run.
func Open(s *store.Store) (*State, error) {
	if s == nil {
		return nil, store.ErrStoreNil
	}

	st := &State{store: s}
	if err := st.load(); err != nil {
		return nil, err
	}

	return st, nil
}

// load reads all blobs once at session start. Absent customer and product
// blobs yield zero values; an absent settings blob is seeded with the
// hard-coded defaults.
func (st *State) load() error {
	value, err := st.store.Get(store.BlobCustomers)

	switch {
	case err == nil:
		if err = json.Unmarshal(value, &st.customers); err != nil {
			return errors.Wrap(err, "failed to decode customers blob")
		}
	case errors.Is(err, store.ErrBlobNotFound):
		st.customers = nil
	default:
		return err
	}

	value, err = st.store.Get(store.BlobProducts)

	switch {
	case err == nil:
		if err = json.Unmarshal(value, &st.products); err != nil {
			return errors.Wrap(err, "failed to decode products blob")
		}
	case errors.Is(err, store.ErrBlobNotFound):
		st.products = crm.ProductCounters{}
	default:
		return err
	}

	value, err = st.store.Get(store.BlobSettings)

	switch {
	case err == nil:
		if err = json.Unmarshal(value, &st.settings); err != nil {
			return errors.Wrap(err, "failed to decode settings blob")
		}
	case errors.Is(err, store.ErrBlobNotFound):
		st.settings = crm.DefaultSettings()

		if err = st.saveSettingsLocked(); err != nil {
			return err
		}
	default:
		return err
	}

	return nil
}

// Customers returns a snapshot copy of the insertion-ordered collection.
func (st *State) Customers() []crm.Customer {
	st.customersMu.RLock()
	defer st.customersMu.RUnlock()

	out := make([]crm.Customer, len(st.customers))
	copy(out, st.customers)

	return out
}

// CustomerCount returns the current collection size.
func (st *State) CustomerCount() int {
	st.customersMu.RLock()
	defer st.customersMu.RUnlock()

	return len(st.customers)
}

// ReplaceCustomers persists the given collection and replaces the
// in-memory mirror. The store is written first so a failed flush leaves
// the session state untouched.
func (st *State) ReplaceCustomers(customers []crm.Customer) error {
	st.customersMu.Lock()
	defer st.customersMu.Unlock()

	value, err := json.Marshal(customers)
	if err != nil {
		return errors.Wrap(err, "failed to encode customers blob")
	}

	if err = st.store.Set(store.BlobCustomers, value); err != nil {
		return err
	}

	st.customers = customers

	return nil
}

// Products returns the current product counters.
func (st *State) Products() crm.ProductCounters {
	st.productsMu.RLock()
	defer st.productsMu.RUnlock()

	return st.products
}

// ReplaceProducts persists and replaces the singleton counters, all four
// fields together.
func (st *State) ReplaceProducts(products crm.ProductCounters) error {
	st.productsMu.Lock()
	defer st.productsMu.Unlock()

	value, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "failed to encode products blob")
	}

	if err = st.store.Set(store.BlobProducts, value); err != nil {
		return err
	}

	st.products = products

	return nil
}

// Settings returns a snapshot copy of the settings document.
func (st *State) Settings() crm.Settings {
	st.settingsMu.RLock()
	defer st.settingsMu.RUnlock()

	out := st.settings
	out.Categories = make([]string, len(st.settings.Categories))
	copy(out.Categories, st.settings.Categories)

	return out
}

// ReplaceSettings persists and replaces the settings document wholesale.
func (st *State) ReplaceSettings(settings crm.Settings) error {
	st.settingsMu.Lock()
	defer st.settingsMu.Unlock()

	value, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to encode settings blob")
	}

	if err = st.store.Set(store.BlobSettings, value); err != nil {
		return err
	}

	st.settings = settings

	return nil
}

func (st *State) saveSettingsLocked() error {
	value, err := json.Marshal(st.settings)
	if err != nil {
		return errors.Wrap(err, "failed to encode settings blob")
	}

	return st.store.Set(store.BlobSettings, value)
}

// ResetAll clears every blob from the store and resets the in-memory
// mirror to first-run state, settings defaults included.
func (st *State) ResetAll() error {
	st.customersMu.Lock()
	defer st.customersMu.Unlock()
	st.productsMu.Lock()
	defer st.productsMu.Unlock()
	st.settingsMu.Lock()
	defer st.settingsMu.Unlock()

	if err := st.store.Reset(); err != nil {
		return err
	}

	st.customers = nil
	st.products = crm.ProductCounters{}
	st.settings = crm.DefaultSettings()

	return st.saveSettingsLocked()
}

// BlobSizes reports the stored byte length of each blob, used by the
// reports system info panel.
func (st *State) BlobSizes() (customers, products, settings int) {
	return st.store.Size(store.BlobCustomers),
		st.store.Size(store.BlobProducts),
		st.store.Size(store.BlobSettings)
}
