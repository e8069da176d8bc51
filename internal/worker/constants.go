package worker

// Pool sizing defaults. One or two workers cover the maintenance load; the
// queue only needs room for a few ticks of backlog.
const (
	DefaultPoolWorkers   = 2
	DefaultPoolQueueSize = 16
)

// Log messages for the worker pool
const (
	LogMsgJobFailed    = "Maintenance job failed"
	LogMsgJobCompleted = "Maintenance job completed"
)

// Log messages for the drop expiry worker
const (
	LogMsgDropSweepCompleted = "Drop expiry sweep completed"
	LogMsgDropSweepSkipped   = "Drop expiry sweep skipped, queue full"
	LogMsgDropSweeperStopped = "Drop expiry sweeper stopped"
)
