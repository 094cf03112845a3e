package tasks

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// MemoryRepository keeps tasks in process memory, in id order. Data is lost
// on restart.
type MemoryRepository struct {
	mu     sync.RWMutex
	tasks  []*models.Task
	nextID int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Task{}
	for i := len(r.tasks) - 1; i >= 0; i-- {
		if r.tasks[i].UserID == userID {
			result = append(result, *r.tasks[i])
		}
	}
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	t := *r.tasks[i]
	return &t, nil
}

func (r *MemoryRepository) OwnerOf(_ context.Context, id int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return 0, common.ErrNotFound
	}
	return r.tasks[i].UserID, nil
}

func (r *MemoryRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := *task
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.nextID++
	r.tasks = append(r.tasks, &stored)

	created := stored
	return &created, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	in.Apply(r.tasks[i])
	r.tasks[i].UpdatedAt = r.now()

	updated := *r.tasks[i]
	return &updated, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return common.ErrNotFound
	}
	r.tasks = slices.Delete(r.tasks, i, i+1)
	return nil
}

// indexOf must be called with mu held.
func (r *MemoryRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.tasks, func(t *models.Task) bool { return t.ID == id })
}
