// Package memory is a process-local ledger.Repository used as the default
// backend and in tests. Contents do not survive a restart.
package memory

import (
	"context"
	"sync"
)

type Repository struct {
	mu      sync.Mutex
	payload []byte
	present bool
}

func New() *Repository {
	return &Repository{}
}

func (r *Repository) Load(_ context.Context) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.present {
		return nil, false, nil
	}
	out := make([]byte, len(r.payload))
	copy(out, r.payload)
	return out, true, nil
}

func (r *Repository) Save(_ context.Context, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = make([]byte, len(payload))
	copy(r.payload, payload)
	r.present = true
	return nil
}

func (r *Repository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = nil
	r.present = false
	return nil
}
