package animal

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"favorites/internal/domain/contenttype"
	"favorites/internal/domain/favorite"
)

// Repository stores animals and lists them annotated for a user.
type Repository struct {
	db       *gorm.DB
	registry *contenttype.Registry
}

// NewRepository returns a Repository; registry resolves the animal content type.
func NewRepository(db *gorm.DB, registry *contenttype.Registry) *Repository {
	return &Repository{db: db, registry: registry}
}

// Create inserts a, filling in its id.
func (r *Repository) Create(ctx context.Context, a *Animal) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// GetWithFavorite loads one animal flagged for userID.
func (r *Repository) GetWithFavorite(ctx context.Context, id, userID int64) (*favorite.Annotated[Animal], error) {
	var row favorite.Annotated[Animal]
	err := r.db.WithContext(ctx).
		Model(&Animal{}).
		Scopes(favorite.WithFavoriteFor(r.registry, Animal{}, userID, true)).
		Where(clause.Eq{Column: clause.Column{Table: Animal{}.TableName(), Name: "id"}, Value: id}).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListWithFavorite returns every animal flagged for userID, or only the
// user's favorites when onlyFavorites is set.
func (r *Repository) ListWithFavorite(ctx context.Context, userID int64, onlyFavorites bool) ([]favorite.Annotated[Animal], error) {
	return favorite.FindWithFavorite[Animal](ctx, r.db, r.registry, userID, !onlyFavorites)
}
