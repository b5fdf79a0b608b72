package favorite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"favorites/internal/domain/contenttype"
)

// FlagColumn is the computed column added by WithFavoriteFor.
const FlagColumn = "is_favorite"

// subqueryAlias keeps the correlated favorites lookup unambiguous when the
// annotated model is Favorite itself.
const subqueryAlias = "fav_flag"

// Annotated is a row of T together with the computed favorite flag.
type Annotated[T any] struct {
	Record     T    `json:"record" gorm:"embedded"`
	IsFavorite bool `json:"is_favorite" gorm:"column:is_favorite"`
}

// ExistsExpr builds the correlated predicate "a favorite of this row by
// userID exists". Table and key column come from ct and are validated
// before being emitted as quoted identifiers; ids are bind parameters.
func ExistsExpr(ct *contenttype.ContentType, userID int64) (clause.Expr, error) {
	if err := contenttype.ValidIdentifier(ct.Table); err != nil {
		return clause.Expr{}, err
	}
	if err := contenttype.ValidIdentifier(ct.PKColumn); err != nil {
		return clause.Expr{}, err
	}

	var favorites Favorite
	return clause.Expr{
		SQL: "EXISTS (SELECT 1 FROM ? WHERE ? = ? AND ? = ? AND ? = ?)",
		Vars: []any{
			clause.Table{Name: favorites.TableName(), Alias: subqueryAlias},
			clause.Column{Table: subqueryAlias, Name: "object_id"},
			clause.Column{Table: ct.Table, Name: ct.PKColumn},
			clause.Column{Table: subqueryAlias, Name: "content_type_id"},
			ct.ID,
			clause.Column{Table: subqueryAlias, Name: "user_id"},
			userID,
		},
	}, nil
}

// WithFavoriteFor returns a gorm scope for queries over model's table. It
// selects every column of the table plus is_favorite for userID; with
// includeAll false only the rows the user has favorited are kept.
// Resolution failures are reported through the query's error.
func WithFavoriteFor(reg *contenttype.Registry, model contenttype.Model, userID int64, includeAll bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		ct, err := reg.ForModel(model)
		if err != nil {
			_ = db.AddError(err)
			return db
		}

		exists, err := ExistsExpr(ct, userID)
		if err != nil {
			_ = db.AddError(err)
			return db
		}

		db = db.Select("?.*, (?) AS ?",
			clause.Table{Name: ct.Table},
			exists,
			clause.Column{Name: FlagColumn},
		)
		if !includeAll {
			db = db.Where(exists)
		}
		return db
	}
}

// FindWithFavorite loads rows of T annotated for userID, ordered by
// primary key.
func FindWithFavorite[T contenttype.Model](ctx context.Context, db *gorm.DB, reg *contenttype.Registry, userID int64, includeAll bool) ([]Annotated[T], error) {
	var zero T
	ct, err := reg.ForModel(zero)
	if err != nil {
		return nil, err
	}

	var rows []Annotated[T]
	err = db.WithContext(ctx).
		Model(&zero).
		Scopes(WithFavoriteFor(reg, zero, userID, includeAll)).
		Order(clause.OrderByColumn{Column: clause.Column{Table: ct.Table, Name: ct.PKColumn}}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("favorite: annotate %s: %w", ct.Model, err)
	}
	return rows, nil
}
