package timeutil

import "time"

// NowUnixMilli returns the current UTC time in unix milliseconds, the
// resolution every ctime column is stored at.
func NowUnixMilli() int64 {
	return time.Now().UTC().UnixMilli()
}

func FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
