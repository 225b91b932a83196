package testutil

import (
	"context"
	"sync"

	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/repository"
)

// MemStore is an in-memory substitute for *repository.Repository. It
// mirrors the repository's contract exactly: the same sentinel errors, the
// same owner-scoped not-found folding, and insertion-order task listings.
type MemStore struct {
	mu        sync.Mutex
	users     map[string]*model.User // by id
	usernames map[string]string      // username -> id
	tasks     map[string]*model.Task // by id
	taskOrder []string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:     make(map[string]*model.User),
		usernames: make(map[string]string),
		tasks:     make(map[string]*model.Task),
	}
}

// CreateUser inserts a user, failing on duplicate usernames like the
// database unique constraint would.
func (m *MemStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.usernames[user.Username]; exists {
		return repository.ErrUsernameExists
	}

	stored := *user
	m.users[user.ID] = &stored
	m.usernames[user.Username] = user.ID
	return nil
}

// GetUserByUsername retrieves a user by username.
func (m *MemStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	user := *m.users[id]
	return &user, nil
}

// GetUserByID retrieves a user by id.
func (m *MemStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

// UserCount reports the number of stored users.
func (m *MemStore) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// CreateTask inserts a task.
func (m *MemStore) CreateTask(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *task
	m.tasks[task.ID] = &stored
	m.taskOrder = append(m.taskOrder, task.ID)
	return nil
}

// ListTasks returns all tasks owned by ownerID in insertion order.
func (m *MemStore) ListTasks(_ context.Context, ownerID string) ([]*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var tasks []*model.Task
	for _, id := range m.taskOrder {
		task, ok := m.tasks[id]
		if !ok || task.OwnerID != ownerID {
			continue
		}
		copied := *task
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

// GetTaskForOwner retrieves a task only when owned by ownerID; missing and
// foreign tasks fail identically.
func (m *MemStore) GetTaskForOwner(_ context.Context, id, ownerID string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, repository.ErrTaskNotFound
	}

	copied := *task
	return &copied, nil
}

// UpdateTask persists a task's fields with the same owner scoping as the
// SQL UPDATE.
func (m *MemStore) UpdateTask(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return repository.ErrTaskNotFound
	}

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// DeleteTask removes a task with the same owner scoping as the SQL DELETE.
func (m *MemStore) DeleteTask(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return repository.ErrTaskNotFound
	}

	delete(m.tasks, id)
	for i, orderedID := range m.taskOrder {
		if orderedID == id {
			m.taskOrder = append(m.taskOrder[:i], m.taskOrder[i+1:]...)
			break
		}
	}
	return nil
}
