// Package domain provides domain types for reading git history.
package domain

import "time"

// CommitInfo holds one entry of git log.
type CommitInfo struct {
	Hash      string    // Full 40-char SHA
	ShortHash string    // 7-char abbreviated hash
	Subject   string    // First line of commit message
	Author    string    // Author name
	Date      time.Time // Author timestamp
}
