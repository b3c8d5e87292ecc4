/*
Package memory provides the in-process dataset workspace.

PURPOSE:
  Holds the tables a user is working on between API calls: create a
  dataset, list, fetch, edit a month row, append a month. This mirrors
  what the dashboard keeps in its session; it is working state, not
  persistence, and dies with the process.

CONCURRENCY:
  The workspace is the only shared mutable component in the system.
  A single RWMutex guards the dataset map; everything returned to a
  caller is a deep copy, so stored tables can never be corrupted from
  outside the lock.

SEE ALSO:
  - dataset/table.go: The Table snapshots stored here
  - api/handlers.go: The workspace endpoints
*/
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preventia/indicator-engine/dataset"
	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// WORKSPACE
// =============================================================================

// Dataset is one stored table with its identity and bookkeeping.
type Dataset struct {
	ID        string
	Name      string
	Kind      dataset.Kind
	Table     dataset.Table
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Workspace is the uuid-keyed dataset registry.
type Workspace struct {
	mu       sync.RWMutex
	datasets map[string]Dataset
	now      func() time.Time
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		datasets: make(map[string]Dataset),
		now:      time.Now,
	}
}

// Create stores a new dataset and returns its snapshot, ID assigned.
// An empty kind is detected from the table's columns.
func (w *Workspace) Create(name string, kind dataset.Kind, tbl dataset.Table) Dataset {
	if kind == "" {
		kind = dataset.DetectKind(tbl)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	ds := Dataset{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Table:     tbl.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	w.datasets[ds.ID] = ds
	return snapshot(ds)
}

// List returns snapshots of every dataset, oldest first.
func (w *Workspace) List() []Dataset {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Dataset, 0, len(w.datasets))
	for _, ds := range w.datasets {
		out = append(out, snapshot(ds))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Get returns a snapshot of one dataset.
func (w *Workspace) Get(id string) (Dataset, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ds, ok := w.datasets[id]
	if !ok {
		return Dataset{}, indicator.ErrDatasetNotFound
	}
	return snapshot(ds), nil
}

// Replace swaps a dataset's table wholesale.
func (w *Workspace) Replace(id string, tbl dataset.Table) (Dataset, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ds, ok := w.datasets[id]
	if !ok {
		return Dataset{}, indicator.ErrDatasetNotFound
	}
	ds.Table = tbl.Clone()
	ds.UpdatedAt = w.now()
	w.datasets[id] = ds
	return snapshot(ds), nil
}

// Delete removes a dataset.
func (w *Workspace) Delete(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.datasets[id]; !ok {
		return indicator.ErrDatasetNotFound
	}
	delete(w.datasets, id)
	return nil
}

// =============================================================================
// MONTH-KEYED EDITS
// =============================================================================

// UpdateMonth overwrites cells of the row whose mes matches the given
// month, case-insensitively. Only columns already present in the table
// are touched; stray keys in values are ignored.
func (w *Workspace) UpdateMonth(id, month string, values dataset.Row) (Dataset, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ds, ok := w.datasets[id]
	if !ok {
		return Dataset{}, indicator.ErrDatasetNotFound
	}

	month = indicator.NormalizeMonth(month)
	idx := -1
	for i := range ds.Table.Rows {
		if indicator.NormalizeMonth(ds.Table.Text(i, "mes")) == month {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Dataset{}, indicator.ErrMonthNotFound
	}

	for col, v := range values {
		col = dataset.NormalizeName(col)
		if ds.Table.HasColumn(col) {
			ds.Table.Rows[idx][col] = v
		}
	}
	ds.UpdatedAt = w.now()
	w.datasets[id] = ds
	return snapshot(ds), nil
}

// AddMonth appends a new month row. Columns the values leave out are
// zero-filled; mes is required.
func (w *Workspace) AddMonth(id string, values dataset.Row) (Dataset, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ds, ok := w.datasets[id]
	if !ok {
		return Dataset{}, indicator.ErrDatasetNotFound
	}
	normalized := make(dataset.Row, len(values))
	for col, v := range values {
		normalized[dataset.NormalizeName(col)] = v
	}
	if _, hasMonth := normalized["mes"]; !hasMonth {
		return Dataset{}, indicator.NewSchemaError(string(ds.Kind), []string{"mes"})
	}

	row := make(dataset.Row, len(ds.Table.Columns))
	for _, col := range ds.Table.Columns {
		row[col] = 0.0
	}
	for col, v := range normalized {
		if !ds.Table.HasColumn(col) {
			ds.Table.Columns = append(ds.Table.Columns, col)
		}
		row[col] = v
	}

	ds.Table.Rows = append(ds.Table.Rows, row)
	ds.UpdatedAt = w.now()
	w.datasets[id] = ds
	return snapshot(ds), nil
}

// snapshot deep-copies a dataset so callers never alias stored state.
func snapshot(ds Dataset) Dataset {
	ds.Table = ds.Table.Clone()
	return ds
}
