package domain

import "time"

// RawObject is one listed object from the forecast bucket.
type RawObject struct {
	Key          string
	Href         string // full URL, e.g. s3://bucket/key
	Size         int64
	LastModified time.Time
}
