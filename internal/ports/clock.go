package ports

import "time"

// Clock abstracts time for backoff delays and timing metrics, so tests can
// control it.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}
