package model

// User is a participant. It is created once at registration and never changed.
// swagger:model User
type User struct {
	UUIDBase
	Name string `gorm:"size:100;not null" json:"name"`
}

func (User) TableName() string {
	return "users"
}
