package models

import "time"

// StoredRecord is one row of the durable key-value store. The profile and the
// full meal collection each live under a fixed key as an opaque JSON blob,
// loaded in full at startup and rewritten in full on every mutation.
type StoredRecord struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     []byte `gorm:"type:bytea"`
	UpdatedAt time.Time
}
