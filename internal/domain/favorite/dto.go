package favorite

import "time"

// FavoriteResponse is a favorite as returned by the API.
type FavoriteResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	ObjectID    int64     `json:"object_id"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"created_on"`
}

// FavoriteListResponse is one page of favorites.
type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

type CheckFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

type CountFavoriteResponse struct {
	Count int64 `json:"count"`
}

func ToFavoriteResponse(f *Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:          f.ID,
		UserID:      f.UserID,
		ObjectID:    f.ObjectID,
		Description: f.String(),
		CreatedOn:   f.CreatedOn,
	}
	if f.ContentType != nil {
		resp.Type = f.ContentType.Model
	}
	return resp
}

func ToFavoriteListResponse(favorites []Favorite, total int64, page, perPage int) FavoriteListResponse {
	items := make([]FavoriteResponse, len(favorites))
	for i := range favorites {
		items[i] = ToFavoriteResponse(&favorites[i])
	}
	return FavoriteListResponse{Favorites: items, Total: total, Page: page, PerPage: perPage}
}
