package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is the trail of write requests served by the API
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Action     string         `gorm:"type:varchar(10);not null" json:"action"`
	Resource   string         `gorm:"type:varchar(100);not null;index" json:"resource"`
	ResourceID uint           `json:"resource_id"`
	Path       string         `gorm:"type:varchar(255)" json:"path"`
	Payload    datatypes.JSON `json:"payload"`
	StatusCode int            `json:"status_code"`
	RequestID  string         `gorm:"type:varchar(64)" json:"request_id"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string         `gorm:"type:text" json:"user_agent"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
