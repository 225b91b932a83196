package metrics

import "sync/atomic"

// InMemoryRecorder implements Recorder with atomic counters.
// Useful for tests and for the readiness of a metrics endpoint later.
type InMemoryRecorder struct {
	usersRegistered atomic.Int64
	loginSuccesses  atomic.Int64
	loginFailures   atomic.Int64
	tasksCreated    atomic.Int64
	tasksUpdated    atomic.Int64
	tasksDeleted    atomic.Int64
}

// NewInMemory returns a Recorder backed by in-process counters.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() { m.usersRegistered.Add(1) }

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() { m.loginSuccesses.Add(1) }

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() { m.loginFailures.Add(1) }

// IncTaskCreated increments the task creation counter.
func (m *InMemoryRecorder) IncTaskCreated() { m.tasksCreated.Add(1) }

// IncTaskUpdated increments the task update counter.
func (m *InMemoryRecorder) IncTaskUpdated() { m.tasksUpdated.Add(1) }

// IncTaskDeleted increments the task deletion counter.
func (m *InMemoryRecorder) IncTaskDeleted() { m.tasksDeleted.Add(1) }

// Snapshot returns a point-in-time view of all counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: m.usersRegistered.Load(),
		LoginSuccesses:  m.loginSuccesses.Load(),
		LoginFailures:   m.loginFailures.Load(),
		TasksCreated:    m.tasksCreated.Load(),
		TasksUpdated:    m.tasksUpdated.Load(),
		TasksDeleted:    m.tasksDeleted.Load(),
	}
}
