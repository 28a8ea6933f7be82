package services

import (
	"fmt"
	"time"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// quizSnapshotKey is the cache key for a published quiz's takeable snapshot.
func quizSnapshotKey(quizID uint) string {
	return fmt.Sprintf("quiz:snapshot:%d", quizID)
}
