// Package usecase implements the task operations, always scoped to the caller.
package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"taskhive/internal/feature/task/domain"
	"taskhive/internal/feature/task/domain/entity"
	"taskhive/internal/shared/apperr"
)

// MaxTitleLength is the longest accepted task title.
const MaxTitleLength = 255

// TaskRepository abstracts the task store. Every method is scoped by owner id;
// a task owned by someone else is reported as domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	FindByID(ctx context.Context, ownerID, id string) (*entity.Task, error)
	// Update applies patch and sets updated_at in one step, returning the stored task.
	Update(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// CreateTaskInput carries the fields accepted on creation.
type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

type taskUsecase struct {
	tasks TaskRepository
	now   func() time.Time
}

// NewTaskUsecase creates a new taskUsecase.
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks, now: time.Now}
}

func (u *taskUsecase) timestamp() time.Time {
	return u.now().UTC().Truncate(time.Microsecond)
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.Validationf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", apperr.Validationf("title must be at most %d characters", MaxTitleLength)
	}
	return title, nil
}

// normalizeDescription maps an empty description to NULL.
func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	return d
}

// normalizeDate drops the time of day, keeping the calendar date in UTC.
func normalizeDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	y, m, day := d.Date()
	t := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// Create stores a new incomplete task owned by uid.
func (u *taskUsecase) Create(ctx context.Context, uid string, in CreateTaskInput) (*entity.Task, error) {
	if uuid.Validate(uid) != nil {
		return nil, domain.ErrOwnerNotFound
	}
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	now := u.timestamp()
	task := &entity.Task{
		ID:          uuid.NewString(),
		UserID:      uid,
		Title:       title,
		Description: normalizeDescription(in.Description),
		Status:      false,
		DueDate:     normalizeDate(in.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns every task owned by uid. An empty result is not an error.
func (u *taskUsecase) List(ctx context.Context, uid string) ([]entity.Task, error) {
	if uuid.Validate(uid) != nil {
		return []entity.Task{}, nil
	}
	tasks, err := u.tasks.ListByOwner(ctx, uid)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

// Get returns the task when uid owns it.
func (u *taskUsecase) Get(ctx context.Context, uid, id string) (*entity.Task, error) {
	if uuid.Validate(uid) != nil || uuid.Validate(id) != nil {
		return nil, domain.ErrTaskNotFound
	}
	return u.tasks.FindByID(ctx, uid, id)
}

// Update applies the present fields of patch and bumps updated_at.
func (u *taskUsecase) Update(ctx context.Context, uid, id string, patch entity.TaskPatch) (*entity.Task, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if patch.Description.Set {
		patch.Description.Value = normalizeDescription(patch.Description.Value)
	}
	if patch.DueDate.Set {
		patch.DueDate.Value = normalizeDate(patch.DueDate.Value)
	}

	if uuid.Validate(uid) != nil || uuid.Validate(id) != nil {
		return nil, domain.ErrTaskNotFound
	}
	return u.tasks.Update(ctx, uid, id, patch, u.timestamp())
}

// Delete removes the task when uid owns it.
func (u *taskUsecase) Delete(ctx context.Context, uid, id string) error {
	if uuid.Validate(uid) != nil || uuid.Validate(id) != nil {
		return domain.ErrTaskNotFound
	}
	return u.tasks.Delete(ctx, uid, id)
}
