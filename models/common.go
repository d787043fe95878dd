package models

import "time"

type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RawAttributes holds the unprocessed attributes an identity provider sent.
type RawAttributes map[string]any

func isOneOf[T ~string](v T, known ...T) bool {
	for _, k := range known {
		if v == k {
			return true
		}
	}
	return false
}
