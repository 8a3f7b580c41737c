// Package model defines shared data structures.
package model

import "time"

// Revision is one write to the non-volatile image.
type Revision struct {
	ID        string
	WrittenAt time.Time
	Offset    int64
	Length    int
	// Image is the whole device image after the write.
	Image []byte
}

// HistoryFilter selects revisions for reporting.
type HistoryFilter struct {
	Since *time.Time
	Last  int
}
