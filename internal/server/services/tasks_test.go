package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTaskService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(repomanager.NewMemoryRepositoryManager(), logging.NewNop())
}

const (
	alice int64 = 1
	bob   int64 = 2
)

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := newTaskService(t)

	got, err := svc.Create(context.Background(), alice, models.TaskInput{Title: ptr("Buy milk"), Priority: ptr("High")})
	require.NoError(t, err)

	assert.Equal(t, alice, got.UserID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, models.DefaultCategory, got.Category)
	assert.Equal(t, "High", got.Priority)
	assert.False(t, got.DueDate.Valid)
	assert.Equal(t, 0, got.Completed)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreate_ValidationBeforeStore(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, models.TaskInput{Priority: ptr("Urgent")})
	require.ErrorIs(t, err, common.ErrValidation)

	fe, ok := err.(common.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fe, "title")
	assert.Contains(t, fe, "priority")

	list, err := svc.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_RoundTripAndDefaultOrder(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, alice, models.TaskInput{Title: ptr(title)})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, bob, models.TaskInput{Title: ptr("bob's")})
	require.NoError(t, err)

	list, err := svc.List(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"three", "two", "one"}, titles(list))
	for i := 1; i < len(list); i++ {
		assert.Greater(t, list[i-1].ID, list[i].ID)
	}

	created, err := svc.List(ctx, alice, SortCreated)
	require.NoError(t, err)
	assert.Equal(t, titles(list), titles(created))

	unknown, err := svc.List(ctx, alice, "alphabetical")
	require.NoError(t, err)
	assert.Equal(t, titles(list), titles(unknown))
}

func TestList_SortKeysThroughService(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	d1 := models.NewDate(2026, time.May, 1)
	d2 := models.NewDate(2026, time.January, 1)
	_, _ = svc.Create(ctx, alice, models.TaskInput{Title: ptr("low-may"), Priority: ptr("Low"), DueDate: &d1})
	_, _ = svc.Create(ctx, alice, models.TaskInput{Title: ptr("high-none"), Priority: ptr("High")})
	_, _ = svc.Create(ctx, alice, models.TaskInput{Title: ptr("med-jan"), DueDate: &d2})

	byDue, err := svc.List(ctx, alice, SortDue)
	require.NoError(t, err)
	assert.Equal(t, []string{"med-jan", "low-may", "high-none"}, titles(byDue))

	byPriority, err := svc.List(ctx, alice, SortPriority)
	require.NoError(t, err)
	assert.Equal(t, []string{"high-none", "med-jan", "low-may"}, titles(byPriority))
}

func TestGet_OwnershipHidesOtherUsersTasks(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, alice, models.TaskInput{Title: ptr("mine")})
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)

	_, err = svc.Get(ctx, bob, task.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.Get(ctx, alice, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate_PartialMerge(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	due := models.NewDate(2026, time.June, 30)
	task, err := svc.Create(ctx, alice, models.TaskInput{
		Title: ptr("Buy milk"), Description: ptr("2l"), Category: ptr("Home"), Priority: ptr("High"), DueDate: &due,
	})
	require.NoError(t, err)

	got, err := svc.Update(ctx, alice, task.ID, models.TaskInput{Completed: ptr(1)})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2l", got.Description)
	assert.Equal(t, "Home", got.Category)
	assert.Equal(t, "High", got.Priority)
	assert.Equal(t, due.String(), got.DueDate.String())
	assert.False(t, got.UpdatedAt.Before(task.UpdatedAt))
}

func TestUpdate_ClearsDueDate(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	due := models.NewDate(2026, time.June, 30)
	task, _ := svc.Create(ctx, alice, models.TaskInput{Title: ptr("t"), DueDate: &due})

	got, err := svc.Update(ctx, alice, task.ID, models.TaskInput{DueDate: &models.Date{}})
	require.NoError(t, err)
	assert.False(t, got.DueDate.Valid)
}

func TestUpdate_ForbiddenLeavesTaskUnchanged(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	task, _ := svc.Create(ctx, alice, models.TaskInput{Title: ptr("mine")})

	_, err := svc.Update(ctx, bob, task.ID, models.TaskInput{Title: ptr("stolen"), Completed: ptr(1)})
	assert.ErrorIs(t, err, common.ErrForbidden)

	got, err := svc.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.Equal(t, 0, got.Completed)
}

func TestUpdate_NotFoundAndValidation(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, alice, 42, models.TaskInput{Completed: ptr(1)})
	assert.ErrorIs(t, err, common.ErrNotFound)

	task, _ := svc.Create(ctx, alice, models.TaskInput{Title: ptr("t")})
	_, err = svc.Update(ctx, alice, task.ID, models.TaskInput{Title: ptr("  ")})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(ctx, bob, task.ID, models.TaskInput{Priority: ptr("Urgent")})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDelete_IdempotenceAndOwnership(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	task, _ := svc.Create(ctx, alice, models.TaskInput{Title: ptr("t")})

	assert.ErrorIs(t, svc.Delete(ctx, bob, task.ID), common.ErrForbidden)
	_, err := svc.Get(ctx, alice, task.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice, task.ID))
	assert.ErrorIs(t, svc.Delete(ctx, alice, task.ID), common.ErrNotFound)
}

// vanishingTasks simulates a row deleted between the ownership check and the
// mutation.
type vanishingTasks struct{ tasks.Repository }

func (v vanishingTasks) Update(context.Context, int64, models.TaskInput) (*models.Task, error) {
	return nil, common.ErrNotFound
}

func TestUpdate_RaceWindowReportsNotFound(t *testing.T) {
	mem := repomanager.NewMemoryRepositoryManager()
	m := &failingManager{MemoryRepositoryManager: mem, tasks: vanishingTasks{mem.Tasks()}}
	svc := NewTaskService(m, logging.NewNop())
	ctx := context.Background()

	task, err := svc.Create(ctx, alice, models.TaskInput{Title: ptr("t")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice, task.ID, models.TaskInput{Completed: ptr(1)})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func titles(list []models.Task) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Title
	}
	return out
}
