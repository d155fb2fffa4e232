package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserProfile struct {
	UserId     string                                `gorm:"type:varchar(128);primaryKey"`
	Values     datatypes.JSONType[map[string]string] `gorm:"column:profile_values;type:jsonb;not null"`
	Persistent datatypes.JSONType[map[string]string] `gorm:"column:persistent_memory;type:jsonb;not null"`
	CreatedAt  time.Time                             `gorm:"autoCreateTime"`
	UpdatedAt  time.Time                             `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
