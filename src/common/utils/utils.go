package utils

import "fmt"

func BuildBatchKey(batchID string) string {
	return fmt.Sprintf("batch:%s", batchID)
}

func BuildSummaryKey(batchID string) string {
	return fmt.Sprintf("summary:%s", batchID)
}

func NullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
