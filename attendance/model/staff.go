package model

import "time"

type Staff struct {
	UserID       string `gorm:"primaryKey;column:user_id;type:varchar(64)" json:"userId"`
	Username     string `gorm:"column:username;type:varchar(255)" json:"username"`
	Useremail    string `gorm:"column:useremail;type:varchar(255)" json:"useremail"`
	Role         string `gorm:"column:role;type:varchar(50)" json:"role"`
	MobileNumber string `gorm:"column:mobile_number;type:varchar(50)" json:"mobileNumber"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Staff) TableName() string {
	return "staffs"
}
