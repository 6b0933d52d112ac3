package domain

import "time"

// NextID returns a fresh integer identifier: the current time in
// milliseconds (the scheme the original system used), bumped past every id
// already taken so restored snapshots with future-dated ids cannot collide.
func NextID(now time.Time, taken ...int64) int64 {
	id := now.UnixMilli()
	for _, t := range taken {
		if t >= id {
			id = t + 1
		}
	}
	return id
}
