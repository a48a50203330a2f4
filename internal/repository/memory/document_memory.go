package memory

import (
	"context"
	"sort"
	"sync"

	"docportal/internal/model"
	"docportal/internal/repository"
)

type documentEntry struct {
	doc model.Document
	seq uint64
}

// DocumentMemory is an in-process implementation of repository.DocumentRepository.
// A single RWMutex makes every conditional write an atomic check-then-set and
// every List a point-in-time snapshot. It is safe for concurrent use.
type DocumentMemory struct {
	mu   sync.RWMutex
	rows map[string]*documentEntry
	seq  uint64
}

// NewDocumentMemory creates an empty store.
func NewDocumentMemory() *DocumentMemory {
	return &DocumentMemory{rows: make(map[string]*documentEntry)}
}

var _ repository.DocumentRepository = (*DocumentMemory)(nil)

func (r *DocumentMemory) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[doc.ID]; ok {
		return nil, repository.ErrConditionFailed
	}
	r.seq++
	e := &documentEntry{doc: cloneDocument(*doc), seq: r.seq}
	r.rows[doc.ID] = e
	out := cloneDocument(e.doc)
	return &out, nil
}

func (r *DocumentMemory) FindByID(_ context.Context, id string) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneDocument(e.doc)
	return &out, nil
}

func (r *DocumentMemory) List(_ context.Context, f repository.DocumentFilter) ([]model.Document, error) {
	r.mu.RLock()
	matched := make([]*documentEntry, 0, len(r.rows))
	for _, e := range r.rows {
		if f.Matches(&e.doc) {
			matched = append(matched, &documentEntry{doc: cloneDocument(e.doc), seq: e.seq})
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.doc.UpdatedAt.Equal(b.doc.UpdatedAt) {
			return a.doc.UpdatedAt.After(b.doc.UpdatedAt)
		}
		return a.seq > b.seq
	})

	items := make([]model.Document, 0, len(matched))
	for _, e := range matched {
		items = append(items, e.doc)
	}
	return items, nil
}

func (r *DocumentMemory) Update(_ context.Context, id string, cond repository.Condition, patch repository.DocumentPatch) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.checkLocked(id, cond)
	if err != nil {
		return nil, err
	}
	return r.applyLocked(e, patch), nil
}

// checkLocked finds the row and evaluates cond. r.mu must be held.
func (r *DocumentMemory) checkLocked(id string, cond repository.Condition) (*documentEntry, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !cond.Holds(&e.doc) {
		return nil, repository.ErrConditionFailed
	}
	return e, nil
}

// applyLocked patches e and moves it to the front of the listing order. r.mu must be held.
func (r *DocumentMemory) applyLocked(e *documentEntry, patch repository.DocumentPatch) *model.Document {
	patch.Apply(&e.doc)
	r.seq++
	e.seq = r.seq

	out := cloneDocument(e.doc)
	return &out
}

func (r *DocumentMemory) Delete(_ context.Context, id string, cond repository.Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !cond.Holds(&e.doc) {
		return repository.ErrConditionFailed
	}
	delete(r.rows, id)
	return nil
}

// cloneDocument copies d so callers never share the stored pointers.
func cloneDocument(d model.Document) model.Document {
	if d.ReviewedBy != nil {
		rb := *d.ReviewedBy
		d.ReviewedBy = &rb
	}
	if d.ReviewedAt != nil {
		ra := *d.ReviewedAt
		d.ReviewedAt = &ra
	}
	return d
}
