// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()

	// Task management metrics
	IncTaskCreated()
	IncTaskUpdated()
	IncTaskDeleted()
}

// Snapshot is a point-in-time view of the in-memory counters.
type Snapshot struct {
	UsersRegistered int64
	LoginSuccesses  int64
	LoginFailures   int64
	TasksCreated    int64
	TasksUpdated    int64
	TasksDeleted    int64
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
