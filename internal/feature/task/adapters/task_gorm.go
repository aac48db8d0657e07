package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskhive/internal/feature/task/domain"
	"taskhive/internal/feature/task/domain/entity"
	"taskhive/internal/feature/task/usecase"
)

// pgForeignKeyViolation is the SQLSTATE for foreign_key_violation.
const pgForeignKeyViolation = "23503"

type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm creates a new taskGorm on the given connection.
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// Create inserts the task. A missing owner yields domain.ErrOwnerNotFound.
func (r *taskGorm) Create(ctx context.Context, t *entity.Task) error {
	if t == nil {
		return errors.New("task is nil")
	}
	m := fromEntity(t)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOwnerNotFound
		}
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's tasks, oldest first.
func (r *taskGorm) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	var rows []TaskModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]entity.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, rows[i].ToEntity())
	}
	return tasks, nil
}

func (r *taskGorm) find(tx *gorm.DB, ownerID, id string) (*entity.Task, error) {
	var m TaskModel
	if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	t := m.ToEntity()
	return &t, nil
}

// FindByID returns the task when ownerID owns it, or domain.ErrTaskNotFound.
func (r *taskGorm) FindByID(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	return r.find(r.db.WithContext(ctx), ownerID, id)
}

// patchColumns converts a patch to the column map passed to Updates.
func patchColumns(p entity.TaskPatch, updatedAt time.Time) map[string]any {
	cols := map[string]any{"updated_at": updatedAt}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description.Set {
		if p.Description.Value == nil {
			cols["description"] = nil
		} else {
			cols["description"] = *p.Description.Value
		}
	}
	if p.DueDate.Set {
		if p.DueDate.Value == nil {
			cols["due_date"] = nil
		} else {
			cols["due_date"] = *p.DueDate.Value
		}
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	return cols
}

// Update applies the patch to the owner's task and returns the stored row.
func (r *taskGorm) Update(ctx context.Context, ownerID, id string, patch entity.TaskPatch, updatedAt time.Time) (*entity.Task, error) {
	var out *entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&TaskModel{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(patchColumns(patch, updatedAt))
		if res.Error != nil {
			return fmt.Errorf("update task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrTaskNotFound
		}

		t, err := r.find(tx, ownerID, id)
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the owner's task, or returns domain.ErrTaskNotFound.
func (r *taskGorm) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&TaskModel{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
