package animal

// Animal is a minimal catalog record that users can favorite.
type Animal struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:20;not null"`
}

func (Animal) TableName() string {
	return "animals"
}

func (a Animal) PrimaryKey() int64 { return a.ID }

func (Animal) ModelName() string { return "animal" }

func (a Animal) String() string { return a.Name }
