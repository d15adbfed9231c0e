package entity

import (
	"gorm.io/gorm"
)

// StaffCall is one help request raised from the inactivity prompt.
type StaffCall struct {
	gorm.Model
	SessionID string `json:"sessionId"`
	View      string `json:"view"` // view the customer was on when calling
	Resolved  bool   `json:"resolved"`
}
