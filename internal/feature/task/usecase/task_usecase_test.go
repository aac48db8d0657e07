package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhive/internal/feature/task/domain"
	"taskhive/internal/feature/task/domain/entity"
	"taskhive/internal/shared/apperr"
)

// mockTaskRepository is a mock implementation of TaskRepository.
type mockTaskRepository struct {
	CreateFunc      func(ctx context.Context, task *entity.Task) error
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]entity.Task, error)
	FindByIDFunc    func(ctx context.Context, ownerID, id string) (*entity.Task, error)
	UpdateFunc      func(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error)
	DeleteFunc      func(ctx context.Context, ownerID, id string) error
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTaskRepository) FindByID(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, ownerID, id)
	}
	return nil, domain.ErrTaskNotFound
}

func (m *mockTaskRepository) Update(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, id, patch, updatedAt)
	}
	return nil, domain.ErrTaskNotFound
}

func (m *mockTaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	return domain.ErrTaskNotFound
}

var (
	testUID   = "6f1c2b9e-8d4a-4f0e-9c3b-2a1d5e7f8a90"
	testTask  = "a3e1c7d2-5b4f-4a6e-8d9c-0f1e2d3c4b5a"
	fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.FixedZone("JST", 9*60*60))
)

func newTestUsecase(repo TaskRepository) *taskUsecase {
	uc := NewTaskUsecase(repo)
	uc.now = func() time.Time { return fixedTime }
	return uc
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTaskUsecase_Create(t *testing.T) {
	t.Run("creates an incomplete task", func(t *testing.T) {
		var stored *entity.Task
		repo := &mockTaskRepository{CreateFunc: func(ctx context.Context, task *entity.Task) error {
			stored = task
			return nil
		}}
		due := time.Date(2026, 4, 1, 15, 30, 0, 0, time.UTC)

		task, err := newTestUsecase(repo).Create(context.Background(), testUID, CreateTaskInput{
			Title:       "  Buy milk  ",
			Description: strPtr("2 litres"),
			DueDate:     &due,
		})

		require.NoError(t, err)
		assert.Same(t, stored, task)
		assert.NoError(t, uuid.Validate(task.ID))
		assert.Equal(t, testUID, task.UserID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2 litres", *task.Description)
		assert.False(t, task.Status)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *task.DueDate)
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
		assert.Equal(t, time.UTC, task.CreatedAt.Location())
		assert.Zero(t, task.CreatedAt.Nanosecond()%1000, "timestamps are truncated to microseconds")
	})

	t.Run("optional fields default to null", func(t *testing.T) {
		task, err := newTestUsecase(&mockTaskRepository{}).Create(context.Background(), testUID, CreateTaskInput{
			Title:       "Buy milk",
			Description: strPtr(""),
		})

		require.NoError(t, err)
		assert.Nil(t, task.Description)
		assert.Nil(t, task.DueDate)
	})

	t.Run("title length counts characters", func(t *testing.T) {
		// マルチバイト文字は1文字として数える
		title := strings.Repeat("日", MaxTitleLength)

		task, err := newTestUsecase(&mockTaskRepository{}).Create(context.Background(), testUID, CreateTaskInput{Title: title})

		require.NoError(t, err)
		assert.Equal(t, title, task.Title)
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name  string
			title string
		}{
			{"empty title", ""},
			{"blank title", "   "},
			{"title too long", strings.Repeat("t", MaxTitleLength+1)},
			{"multibyte title too long", strings.Repeat("日", MaxTitleLength+1)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &mockTaskRepository{CreateFunc: func(ctx context.Context, task *entity.Task) error {
					t.Fatal("Create must not be called")
					return nil
				}}

				_, err := newTestUsecase(repo).Create(context.Background(), testUID, CreateTaskInput{Title: tt.title})

				assert.ErrorIs(t, err, apperr.ErrValidation)
			})
		}
	})

	t.Run("malformed owner id", func(t *testing.T) {
		_, err := newTestUsecase(&mockTaskRepository{}).Create(context.Background(), "not-a-uuid", CreateTaskInput{Title: "x"})

		assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		storeErr := errors.New("database error")
		repo := &mockTaskRepository{CreateFunc: func(ctx context.Context, task *entity.Task) error { return storeErr }}

		task, err := newTestUsecase(repo).Create(context.Background(), testUID, CreateTaskInput{Title: "x"})

		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, task)
	})
}

func TestTaskUsecase_List(t *testing.T) {
	t.Run("empty result is an empty slice", func(t *testing.T) {
		tasks, err := newTestUsecase(&mockTaskRepository{}).List(context.Background(), testUID)

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("returns the owner's tasks", func(t *testing.T) {
		repo := &mockTaskRepository{ListByOwnerFunc: func(ctx context.Context, ownerID string) ([]entity.Task, error) {
			assert.Equal(t, testUID, ownerID)
			return []entity.Task{{ID: "1"}, {ID: "2"}}, nil
		}}

		tasks, err := newTestUsecase(repo).List(context.Background(), testUID)

		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("malformed owner id has no tasks", func(t *testing.T) {
		repo := &mockTaskRepository{ListByOwnerFunc: func(ctx context.Context, ownerID string) ([]entity.Task, error) {
			t.Fatal("ListByOwner must not be called")
			return nil, nil
		}}

		tasks, err := newTestUsecase(repo).List(context.Background(), "garbage")

		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskUsecase_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		want := &entity.Task{ID: testTask, UserID: testUID, Title: "x"}
		repo := &mockTaskRepository{FindByIDFunc: func(ctx context.Context, ownerID, id string) (*entity.Task, error) {
			assert.Equal(t, testUID, ownerID)
			assert.Equal(t, testTask, id)
			return want, nil
		}}

		got, err := newTestUsecase(repo).Get(context.Background(), testUID, testTask)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := newTestUsecase(&mockTaskRepository{}).Get(context.Background(), testUID, "42")

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestTaskUsecase_Update(t *testing.T) {
	t.Run("empty patch is rejected without store access", func(t *testing.T) {
		repo := &mockTaskRepository{UpdateFunc: func(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error) {
			t.Fatal("Update must not be called")
			return nil, nil
		}}

		_, err := newTestUsecase(repo).Update(context.Background(), testUID, testTask, entity.TaskPatch{})

		assert.ErrorIs(t, err, ErrEmptyUpdate)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("status false is applied", func(t *testing.T) {
		var got entity.TaskPatch
		var gotAt time.Time
		repo := &mockTaskRepository{UpdateFunc: func(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error) {
			got, gotAt = patch, updatedAt
			return &entity.Task{ID: id}, nil
		}}

		_, err := newTestUsecase(repo).Update(context.Background(), testUID, testTask, entity.TaskPatch{Status: boolPtr(false)})

		require.NoError(t, err)
		require.NotNil(t, got.Status)
		assert.False(t, *got.Status)
		assert.Nil(t, got.Title)
		assert.False(t, got.Description.Set)
		assert.False(t, got.DueDate.Set)
		assert.Equal(t, fixedTime.UTC().Truncate(time.Microsecond), gotAt)
	})

	t.Run("empty description clears it", func(t *testing.T) {
		var got entity.TaskPatch
		repo := &mockTaskRepository{UpdateFunc: func(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error) {
			got = patch
			return &entity.Task{ID: id}, nil
		}}

		_, err := newTestUsecase(repo).Update(context.Background(), testUID, testTask, entity.TaskPatch{
			Description: entity.NewNullable(strPtr("")),
		})

		require.NoError(t, err)
		assert.True(t, got.Description.Set)
		assert.Nil(t, got.Description.Value)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		var got entity.TaskPatch
		repo := &mockTaskRepository{UpdateFunc: func(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error) {
			got = patch
			return &entity.Task{ID: id}, nil
		}}

		_, err := newTestUsecase(repo).Update(context.Background(), testUID, testTask, entity.TaskPatch{Title: strPtr(" New ")})

		require.NoError(t, err)
		assert.Equal(t, "New", *got.Title)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		_, err := newTestUsecase(&mockTaskRepository{}).Update(context.Background(), testUID, testTask, entity.TaskPatch{Title: strPtr("")})

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("not owned", func(t *testing.T) {
		_, err := newTestUsecase(&mockTaskRepository{}).Update(context.Background(), testUID, testTask, entity.TaskPatch{Status: boolPtr(true)})

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := newTestUsecase(&mockTaskRepository{}).Update(context.Background(), testUID, "nope", entity.TaskPatch{Status: boolPtr(true)})

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestTaskUsecase_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		called := false
		repo := &mockTaskRepository{DeleteFunc: func(ctx context.Context, ownerID, id string) error {
			called = true
			return nil
		}}

		require.NoError(t, newTestUsecase(repo).Delete(context.Background(), testUID, testTask))
		assert.True(t, called)
	})

	t.Run("not found", func(t *testing.T) {
		err := newTestUsecase(&mockTaskRepository{}).Delete(context.Background(), testUID, testTask)

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}
