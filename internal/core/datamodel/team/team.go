package team

import "time"

// Permission strings are stored verbatim as a text collection on both
// teams and user_teams; the colon-delimited grammar is the storage
// format, there is no separate permission table.
type Team struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	Permissions []string  `gorm:"column:permissions;serializer:json"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type UserTeam struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	TeamID      int64     `gorm:"column:team_id;not null;index"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	Permissions []string  `gorm:"column:permissions;serializer:json"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
