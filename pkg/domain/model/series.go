package model

import "time"

// CountItem is one bucket of a count-by-dimension aggregation
type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthBucket is one chronological bucket of the count-by-month aggregation.
// Label is formatted as "{3-letter month} {4-digit year}", e.g. "Nov 2025".
type MonthBucket struct {
	Label string     `json:"label"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}
