package model

import "time"

const (
	PunchIn  = 0
	PunchOut = 1
)

// AccessLog is one badge or biometric scan. Punch is only set by devices
// that report a direction (0 = in, anything else = out).
type AccessLog struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);index:idx_access_logs_user_time" json:"userId"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_access_logs_user_time;index" json:"timestamp"`
	Punch     *int      `gorm:"column:punch" json:"punch"`
	DeviceID  string    `gorm:"column:device_id;type:varchar(100)" json:"deviceId"`
	Source    string    `gorm:"column:source;type:varchar(255)" json:"source"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}

// All lists the models owned by a studio schema.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Staff{},
		&AccessLog{},
	}
}
