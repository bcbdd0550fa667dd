package model

import "time"

// User is a gym member or front-desk user.
type User struct {
	UserID string `gorm:"primaryKey;column:user_id;type:varchar(64)" json:"userId"`
	Name   string `gorm:"column:name;type:varchar(255)" json:"name"`
	Email  string `gorm:"column:email;type:varchar(255)" json:"email"`
	Role   string `gorm:"column:role;type:varchar(50)" json:"role"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
