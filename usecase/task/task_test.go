package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
	"github.com/todoflow/backend/repository/memory"
)

type recordedOp struct {
	Method string
	Path   string
	Body   interface{}
}

type fakeRecorder struct {
	ops []recordedOp
}

func (r *fakeRecorder) Record(ctx context.Context, method, path string, body interface{}) error {
	r.ops = append(r.ops, recordedOp{Method: method, Path: path, Body: body})
	return nil
}

func datePtr(t time.Time) *time.Time { return &t }

func sampleTasks(now time.Time) []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Water the plants", ListID: "personal", DueDate: datePtr(now)},
		{ID: 2, Title: "Quarterly report", Description: "Numbers for finance", ListID: "work", DueDate: datePtr(now.Add(72 * time.Hour))},
		{ID: 3, Title: "Archive old mail", ListID: "work", Completed: true, DueDate: datePtr(now.Add(-24 * time.Hour))},
		{ID: 4, Title: "Someday: learn piano", ListID: "personal"},
	}
}

func TestFilter_Today(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	got := Filter(sampleTasks(now), repository.TaskFilter{View: domain.ViewToday}, now)

	// Due today or undated, and not completed.
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestFilter_Upcoming(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	got := Filter(sampleTasks(now), repository.TaskFilter{View: domain.ViewUpcoming}, now)

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilter_OverviewKeepsEverything(t *testing.T) {
	t.Parallel()

	now := time.Now()
	got := Filter(sampleTasks(now), repository.TaskFilter{View: domain.ViewOverview}, now)
	assert.Len(t, got, 4)
}

func TestFilter_CalendarNeedsDueDate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	got := Filter(sampleTasks(now), repository.TaskFilter{View: domain.ViewCalendar}, now)

	require.Len(t, got, 3)
	for _, task := range got {
		assert.NotNil(t, task.DueDate)
	}
}

func TestFilter_UnknownViewBehavesLikeOverview(t *testing.T) {
	t.Parallel()

	now := time.Now()
	got := Filter(sampleTasks(now), repository.TaskFilter{View: domain.View("bogus")}, now)
	assert.Len(t, got, 4)
}

func TestFilter_ListRestriction(t *testing.T) {
	t.Parallel()

	now := time.Now()
	got := Filter(sampleTasks(now), repository.TaskFilter{ListID: "work"}, now)

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestFilter_QueryMatchesTitleAndDescription(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tasks := sampleTasks(now)

	byTitle := Filter(tasks, repository.TaskFilter{Query: "PIANO"}, now)
	require.Len(t, byTitle, 1)
	assert.Equal(t, int64(4), byTitle[0].ID)

	byDescription := Filter(tasks, repository.TaskFilter{Query: "finance"}, now)
	require.Len(t, byDescription, 1)
	assert.Equal(t, int64(2), byDescription[0].ID)
}

func TestFilter_CombinedListViewQuery(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	got := Filter(sampleTasks(now), repository.TaskFilter{
		View:   domain.ViewUpcoming,
		ListID: "work",
		Query:  "report",
	}, now)

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestCreateTask_RecordsBackendCall(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	uc := New(memory.NewTaskRepository(), recorder, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "New task", ListID: "personal"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	require.Len(t, recorder.ops, 1)
	assert.Equal(t, "POST", recorder.ops[0].Method)
	assert.Equal(t, "/api/tasks", recorder.ops[0].Path)
}

func TestCreateTask_EmptyTitleRejected(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	uc := New(memory.NewTaskRepository(), recorder, nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{Title: "   "})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, recorder.ops)
}

func TestToggleTask_FlipsCompletion(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	uc := New(memory.NewTaskRepository(), recorder, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "Toggle me"})
	require.NoError(t, err)

	toggled, err := uc.ToggleTask(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = uc.ToggleTask(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestDeleteTask_RecordsBackendCall(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	uc := New(memory.NewTaskRepository(), recorder, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTask(context.Background(), created.ID))

	_, err = uc.GetTask(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	last := recorder.ops[len(recorder.ops)-1]
	assert.Equal(t, "DELETE", last.Method)
}
