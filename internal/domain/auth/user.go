package auth

import "time"

// User is the account a favorite belongs to. It is also a valid
// favorite target, so one user can favorite another.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email        string    `json:"email,omitempty" gorm:"size:254"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) PrimaryKey() int64 { return u.ID }

func (User) ModelName() string { return "user" }

func (u User) String() string { return u.Username }
