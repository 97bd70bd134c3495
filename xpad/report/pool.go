package report

import "sync"

var pollPool = sync.Pool{
	New: func() any {
		report := PollReport(make([]byte, PollLength))
		return &report
	},
}

// Alloc hands out a full-length poll buffer. The pollers run at sub-
// millisecond cadence, so buffers are recycled instead of reallocated.
func Alloc() *PollReport {
	report := pollPool.Get().(*PollReport)
	*report = (*report)[:PollLength]
	return report
}

func Free(report *PollReport) {
	if cap(*report) != PollLength {
		return
	}
	pollPool.Put(report)
}
