package entity

import (
	"time"
)

// ImportRun kinds.
const (
	RunKindPreview = "preview"
	RunKindImport  = "import"
)

// ImportRun is the audit record of one preview or import request.
type ImportRun struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"userId" json:"user_id"`
	Kind        string    `bson:"kind" json:"kind"`
	Strategy    string    `bson:"strategy,omitempty" json:"strategy,omitempty"`
	FileName    string    `bson:"fileName" json:"file_name"`
	FileSize    int       `bson:"fileSize" json:"file_size"`
	BackupDate  string    `bson:"backupDate" json:"backup_date"`
	BackupEmail string    `bson:"backupEmail" json:"backup_email"`
	Imported    int       `bson:"imported" json:"imported"`
	Updated     int       `bson:"updated" json:"updated"`
	Skipped     int       `bson:"skipped" json:"skipped"`
	ErrorCount  int       `bson:"errorCount" json:"error_count"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
}
