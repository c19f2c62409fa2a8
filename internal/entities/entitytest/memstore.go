// Package entitytest provides in-memory stand-ins for the hosted table and
// bucket, for tests of the entity service and its HTTP handlers.
package entitytest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
)

// MemStore is an in-memory table keyed by id. It fills records through the
// schema's scan targets, so it works for any entity kind.
type MemStore[T any] struct {
	schema domain.Schema[T]

	mu     sync.Mutex
	nextID int64
	rows   map[int64]T
	clock  time.Time

	// Calls counts every method invocation.
	Calls int
	// Err, when set, is returned by every method.
	Err error
	// BeforeUpdate runs before an update is applied, outside the lock.
	BeforeUpdate func(id int64, f domain.Fields)
}

func NewMemStore[T any](schema domain.Schema[T]) *MemStore[T] {
	return &MemStore[T]{
		schema: schema,
		rows:   make(map[int64]T),
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *MemStore[T]) List(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	// ids grow with created_at, so descending id is newest first
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *MemStore[T]) Insert(_ context.Context, f domain.Fields) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	m.nextID++
	m.clock = m.clock.Add(time.Second)

	var item T
	targets := m.schema.Targets(&item)
	*targets[0].(*int64) = m.nextID
	for i, col := range m.schema.Columns {
		*targets[i+1].(*string) = f[col]
	}
	*targets[len(targets)-1].(*time.Time) = m.clock

	m.rows[m.nextID] = item
	return &item, nil
}

func (m *MemStore[T]) Update(_ context.Context, id int64, f domain.Fields) (*T, error) {
	if m.BeforeUpdate != nil {
		m.BeforeUpdate(id, f)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	item, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	targets := m.schema.Targets(&item)
	for i, col := range m.schema.Columns {
		if v, ok := f[col]; ok {
			*targets[i+1].(*string) = v
		}
	}
	m.rows[id] = item
	return &item, nil
}

func (m *MemStore[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return m.Err
	}

	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// MemObjects is an in-memory bucket.
type MemObjects struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	Uploads int
	Err     error
}

func NewMemObjects() *MemObjects {
	return &MemObjects{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

func (o *MemObjects) Upload(_ context.Context, objectPath, contentType string, r io.Reader) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Uploads++
	if o.Err != nil {
		return o.Err
	}
	if _, exists := o.Objects[objectPath]; exists {
		return errors.New("object already exists: " + objectPath)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	o.Objects[objectPath] = buf.Bytes()
	o.Types[objectPath] = contentType
	return nil
}

func (o *MemObjects) PublicURL(objectPath string) string {
	return "https://storage.test/images/" + objectPath
}

// PNG is a minimal valid PNG image.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}
