package domain

// Status is the lifecycle of an asynchronous catalog fetch.
type Status string

func (s Status) String() string {
	return string(s)
}

const (
	StatusIdle      Status = "idle"      // no fetch issued yet
	StatusLoading   Status = "loading"   // a fetch is in flight
	StatusSucceeded Status = "succeeded" // last settled fetch succeeded
	StatusFailed    Status = "failed"    // last settled fetch failed
)
