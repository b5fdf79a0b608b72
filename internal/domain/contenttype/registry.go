package contenttype

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"favorites/internal/pkg/dberr"
)

type loaderFunc func(ctx context.Context, db *gorm.DB, ct ContentType, id int64) (Model, error)

type entry struct {
	ct   ContentType
	load loaderFunc
}

// Registry maps registered models to their content types. Registration is
// explicit: only models passed to Register can be referenced generically.
type Registry struct {
	db *gorm.DB

	mu     sync.RWMutex
	byName map[string]*entry
	byID   map[int64]*entry
}

// NewRegistry returns an empty registry persisting to db.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db:     db,
		byName: make(map[string]*entry),
		byID:   make(map[int64]*entry),
	}
}

type options struct {
	pkColumn string
	relocate bool
}

// Option customizes Register.
type Option func(*options)

// WithPrimaryKey overrides the primary-key column, "id" by default.
func WithPrimaryKey(column string) Option {
	return func(o *options) {
		o.pkColumn = column
	}
}

// WithRelocate lets Register move an existing name to a new table or key
// column. Every stored reference of that type follows the move.
func WithRelocate() Option {
	return func(o *options) {
		o.relocate = true
	}
}

// Register records T in the content_types table (creating the row on first
// use) and makes T resolvable through the registry. A name already bound to
// a different table or key column fails with ErrAlreadyRegistered unless
// WithRelocate is passed.
func Register[T Model](ctx context.Context, r *Registry, opts ...Option) (*ContentType, error) {
	o := options{pkColumn: "id"}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	name := NameOf(zero)
	table := zero.TableName()
	if name == "" {
		return nil, fmt.Errorf("contenttype: model for table %q has an empty name", table)
	}
	if err := ValidIdentifier(table); err != nil {
		return nil, err
	}
	if err := ValidIdentifier(o.pkColumn); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byName[name]; ok && !o.relocate && !prev.ct.sameTarget(table, o.pkColumn) {
		return nil, fmt.Errorf("contenttype: register %s: %w: %s.%s", name, ErrAlreadyRegistered, prev.ct.Table, prev.ct.PKColumn)
	}

	ct, err := r.upsert(ctx, name, table, o.pkColumn, o.relocate)
	if err != nil {
		return nil, fmt.Errorf("contenttype: register %s: %w", name, err)
	}

	e := &entry{ct: *ct, load: loadAs[T]}
	r.byName[name] = e
	r.byID[ct.ID] = e

	return ct, nil
}

func (r *Registry) upsert(ctx context.Context, name, table, pk string, relocate bool) (*ContentType, error) {
	db := r.db.WithContext(ctx)

	var ct ContentType
	err := db.Where(ContentType{Model: name}).
		Attrs(ContentType{Table: table, PKColumn: pk}).
		FirstOrCreate(&ct).Error
	if err != nil {
		if !dberr.IsUniqueViolation(err) {
			return nil, err
		}
		// another process registered the same model between our read and insert
		if err := db.Where("model = ?", name).First(&ct).Error; err != nil {
			return nil, err
		}
	}

	if !ct.sameTarget(table, pk) {
		if !relocate {
			return nil, fmt.Errorf("%w: %s.%s", ErrAlreadyRegistered, ct.Table, ct.PKColumn)
		}
		if err := db.Model(&ct).Updates(map[string]any{"db_table": table, "pk_column": pk}).Error; err != nil {
			return nil, err
		}
		ct.Table, ct.PKColumn = table, pk
	}

	return &ct, nil
}

func loadAs[T Model](ctx context.Context, db *gorm.DB, ct ContentType, id int64) (Model, error) {
	var v T
	err := db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Table: ct.Table, Name: ct.PKColumn}, Value: id}).
		Take(&v).Error
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ForModel returns the content type m was registered under.
func (r *Registry) ForModel(m Model) (*ContentType, error) {
	return r.ForName(NameOf(m))
}

// ForName returns the content type registered under name.
func (r *Registry) ForName(name string) (*ContentType, error) {
	r.mu.RLock()
	e, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	ct := e.ct
	return &ct, nil
}

// Get returns the content type with the given id.
func (r *Registry) Get(id int64) (*ContentType, error) {
	r.mu.RLock()
	e, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotRegistered, id)
	}
	ct := e.ct
	return &ct, nil
}

// Resolve loads the record a generic reference points at. A dangling
// reference returns gorm.ErrRecordNotFound.
func (r *Registry) Resolve(ctx context.Context, contentTypeID, objectID int64) (Model, error) {
	r.mu.RLock()
	e, ok := r.byID[contentTypeID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotRegistered, contentTypeID)
	}
	return e.load(ctx, r.db, e.ct, objectID)
}

// Names lists registered model names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
