package console

import (
	"fmt"
	"time"

	"gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/utils"
)

// Studio is a tenant registered in the console database. Schema holds its attendance tables.
type Studio struct {
	ID            int       `gorm:"column:id;primaryKey;autoIncrement"`
	Code          string    `gorm:"column:code;type:varchar(50);not null;unique"`
	Name          string    `gorm:"column:name;type:varchar(255);not null"`
	Schema        string    `gorm:"column:schema;type:varchar(100);not null"`
	Domain        string    `gorm:"column:domain;type:varchar(255);not null"`
	Timezone      string    `gorm:"column:timezone;type:varchar(64)"`
	LateThreshold string    `gorm:"column:lateThreshold;type:varchar(5)"`
	SlackChannel  string    `gorm:"column:slackChannel;type:varchar(64)"`
	ManagerEmail  string    `gorm:"column:managerEmail;type:varchar(255)"`
	Deactivated   bool      `gorm:"column:deactivated;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:createdAt;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updatedAt;autoUpdateTime"`
}

func (Studio) TableName() string {
	return "studios"
}

// Reconstructor derives a reconstructor for this studio from defaults.
// Empty timezone or threshold keep the default value.
func (s Studio) Reconstructor(defaults *core.Reconstructor) (*core.Reconstructor, error) {
	r := *defaults

	if s.Timezone != "" {
		loc, err := utils.LoadLocation(s.Timezone)
		if err != nil {
			return nil, fmt.Errorf("studio %s: %w", s.Code, err)
		}
		r.Location = loc
	}

	if s.LateThreshold != "" {
		threshold, err := core.ParseTimeOfDay(s.LateThreshold)
		if err != nil {
			return nil, fmt.Errorf("studio %s: %w", s.Code, err)
		}
		r.LateThreshold = threshold
	}

	return &r, nil
}
