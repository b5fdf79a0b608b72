package favorite

import (
	"fmt"
	"time"

	"favorites/internal/domain/auth"
	"favorites/internal/domain/contenttype"
)

// Favorite links a user to any registered record through a generic
// (content type, object id) reference. A user can favorite a given record
// at most once; the unique index below enforces it.
type Favorite struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	UserID        int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_target,priority:1"`
	ContentTypeID int64     `json:"content_type_id" gorm:"not null;uniqueIndex:idx_favorite_user_target,priority:2;index:idx_favorite_target,priority:1"`
	ObjectID      int64     `json:"object_id" gorm:"not null;uniqueIndex:idx_favorite_user_target,priority:3;index:idx_favorite_target,priority:2"`
	CreatedOn     time.Time `json:"created_on" gorm:"autoCreateTime;<-:create"`

	User        *auth.User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ContentType *contenttype.ContentType `json:"content_type,omitempty" gorm:"foreignKey:ContentTypeID"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f Favorite) PrimaryKey() int64 { return f.ID }

func (Favorite) ModelName() string { return "favorite" }

// String reads as "<user> likes <model>#<id>", falling back to raw ids
// when the associations were not preloaded.
func (f Favorite) String() string {
	who := fmt.Sprintf("user#%d", f.UserID)
	if f.User != nil {
		who = f.User.Username
	}
	what := fmt.Sprintf("type#%d", f.ContentTypeID)
	if f.ContentType != nil {
		what = f.ContentType.Model
	}
	return fmt.Sprintf("%s likes %s#%d", who, what, f.ObjectID)
}
