package favorite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"favorites/internal/domain/contenttype"
	"favorites/internal/pkg/dberr"
)

// Repository is the query helper over the favorites table. Lookups are a
// single read, Create and Delete a single write.
type Repository struct {
	db       *gorm.DB
	registry *contenttype.Registry
}

// NewRepository returns a Repository resolving content types through registry.
func NewRepository(db *gorm.DB, registry *contenttype.Registry) *Repository {
	return &Repository{db: db, registry: registry}
}

// Registry returns the content-type registry the repository resolves through.
func (r *Repository) Registry() *contenttype.Registry {
	return r.registry
}

func (r *Repository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("ContentType").
		Order("favorites.id")
}

// ForUser returns every favorite owned by userID, whatever the target type.
func (r *Repository) ForUser(ctx context.Context, userID int64) ([]Favorite, error) {
	var rows []Favorite
	if err := r.query(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ForModel returns favorites pointing at any record of m's type. When
// userID is non-nil only that user's favorites are returned.
func (r *Repository) ForModel(ctx context.Context, m contenttype.Model, userID *int64) ([]Favorite, error) {
	ct, err := r.registry.ForModel(m)
	if err != nil {
		return nil, err
	}
	return r.ForContentType(ctx, ct, userID)
}

// ForContentType returns favorites pointing at records of ct, optionally
// for one user.
func (r *Repository) ForContentType(ctx context.Context, ct *contenttype.ContentType, userID *int64) ([]Favorite, error) {
	q := r.query(ctx).Where("content_type_id = ?", ct.ID)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var rows []Favorite
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForUser returns one page of userID's favorites, optionally limited to
// one content type, together with the total number of matching rows.
func (r *Repository) ListForUser(ctx context.Context, userID int64, ct *contenttype.ContentType, limit, offset int) ([]Favorite, int64, error) {
	q := r.db.WithContext(ctx).Model(&Favorite{}).Where("user_id = ?", userID)
	if ct != nil {
		q = q.Where("content_type_id = ?", ct.ID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Favorite
	err := q.Preload("User").
		Preload("ContentType").
		Order("favorites.id").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ForObject returns favorites pointing at obj, optionally for one user.
func (r *Repository) ForObject(ctx context.Context, obj contenttype.Model, userID *int64) ([]Favorite, error) {
	q, err := r.objectQuery(ctx, obj)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var rows []Favorite
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ForUserObject returns the single favorite linking userID to obj.
func (r *Repository) ForUserObject(ctx context.Context, userID int64, obj contenttype.Model) (*Favorite, error) {
	q, err := r.objectQuery(ctx, obj)
	if err != nil {
		return nil, err
	}

	var rows []Favorite
	if err := q.Where("user_id = ?", userID).Limit(2).Find(&rows).Error; err != nil {
		return nil, err
	}

	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("%w: user %d, %s#%d", ErrMultiple, userID, contenttype.NameOf(obj), obj.PrimaryKey())
	}
}

// Exists reports whether userID has favorited obj.
func (r *Repository) Exists(ctx context.Context, userID int64, obj contenttype.Model) (bool, error) {
	ct, err := r.registry.ForModel(obj)
	if err != nil {
		return false, err
	}
	return r.ExistsRef(ctx, userID, ct, obj.PrimaryKey())
}

// ExistsRef is Exists for a (content type, object id) reference. The target
// record does not have to exist.
func (r *Repository) ExistsRef(ctx context.Context, userID int64, ct *contenttype.ContentType, objectID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("user_id = ? AND content_type_id = ? AND object_id = ?", userID, ct.ID, objectID).
		Count(&count).Error
	return count > 0, err
}

// CountForObject returns how many users have favorited obj.
func (r *Repository) CountForObject(ctx context.Context, obj contenttype.Model) (int64, error) {
	ct, err := r.registry.ForModel(obj)
	if err != nil {
		return 0, err
	}
	return r.CountRef(ctx, ct, obj.PrimaryKey())
}

// CountRef is CountForObject for a (content type, object id) reference.
func (r *Repository) CountRef(ctx context.Context, ct *contenttype.ContentType, objectID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("content_type_id = ? AND object_id = ?", ct.ID, objectID).
		Count(&count).Error
	return count, err
}

// Create stores a favorite of obj for userID. The content type comes from
// the registry entry for obj's type; a second favorite of the same object
// by the same user fails with ErrConflict.
func (r *Repository) Create(ctx context.Context, userID int64, obj contenttype.Model) (*Favorite, error) {
	ct, err := r.registry.ForModel(obj)
	if err != nil {
		return nil, err
	}

	f := &Favorite{
		UserID:        userID,
		ContentTypeID: ct.ID,
		ObjectID:      obj.PrimaryKey(),
	}
	if err := r.db.WithContext(ctx).Omit("User", "ContentType").Create(f).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user %d, %s#%d", ErrConflict, userID, ct.Model, f.ObjectID)
		}
		return nil, err
	}

	// reload so the returned row carries its associations
	if err := r.query(ctx).First(f, f.ID).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes userID's favorite of obj.
func (r *Repository) Delete(ctx context.Context, userID int64, obj contenttype.Model) error {
	ct, err := r.registry.ForModel(obj)
	if err != nil {
		return err
	}
	return r.DeleteRef(ctx, userID, ct, obj.PrimaryKey())
}

// DeleteRef removes userID's favorite of (ct, objectID). It works for
// favorites whose target record has since been deleted.
func (r *Repository) DeleteRef(ctx context.Context, userID int64, ct *contenttype.ContentType, objectID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND content_type_id = ? AND object_id = ?", userID, ct.ID, objectID).
		Delete(&Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ContentObject loads the record f points at.
func (r *Repository) ContentObject(ctx context.Context, f *Favorite) (contenttype.Model, error) {
	return r.registry.Resolve(ctx, f.ContentTypeID, f.ObjectID)
}

func (r *Repository) objectQuery(ctx context.Context, obj contenttype.Model) (*gorm.DB, error) {
	ct, err := r.registry.ForModel(obj)
	if err != nil {
		return nil, err
	}
	return r.query(ctx).Where("content_type_id = ? AND object_id = ?", ct.ID, obj.PrimaryKey()), nil
}
