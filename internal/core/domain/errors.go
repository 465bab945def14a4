package domain

import "errors"

var (
	// ErrInvalidTrack flags a degenerate feature set (non-positive duration or tempo).
	ErrInvalidTrack = errors.New("domain: invalid track feature set")

	// ErrNotFound indicates a track reference is not present in the repository.
	ErrNotFound = errors.New("domain: not found")

	// ErrEmptyBatch indicates a batch operation was requested with no tracks.
	ErrEmptyBatch = errors.New("domain: empty batch")
)
