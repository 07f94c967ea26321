package service

import "time"

// Clock abstracts wall-clock time so attempt timing can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
