package entity

import (
	"gorm.io/gorm"
)

// Staff is the service-mode account for this kiosk terminal.
type Staff struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash
	Role     string `json:"role"`
}
