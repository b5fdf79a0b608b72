package animal

import "favorites/internal/domain/favorite"

type CreateAnimalRequest struct {
	Name string `json:"name" validate:"required,max=20"`
}

type AnimalResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IsFavorite bool   `json:"is_favorite"`
}

type AnimalListResponse struct {
	Animals []AnimalResponse `json:"animals"`
	Total   int              `json:"total"`
}

func ToAnimalResponse(a *Animal) AnimalResponse {
	return AnimalResponse{ID: a.ID, Name: a.Name}
}

func ToAnimalListResponse(rows []favorite.Annotated[Animal]) AnimalListResponse {
	items := make([]AnimalResponse, len(rows))
	for i := range rows {
		items[i] = ToAnimalResponse(&rows[i].Record)
		items[i].IsFavorite = rows[i].IsFavorite
	}
	return AnimalListResponse{Animals: items, Total: len(items)}
}
