package sqlite

import "time"

func timeNow() time.Time {
	return time.Now()
}

func unixToTime(sec int64) time.Time {
	return time.Unix(sec, 0)
}
