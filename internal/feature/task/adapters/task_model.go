// Package adapters provides the gorm-backed task store.
package adapters

import (
	"time"

	authentity "taskhive/internal/feature/auth/domain/entity"
	"taskhive/internal/feature/task/domain/entity"
)

// TaskModel is the tasks table. Deleting the owning user deletes its tasks.
type TaskModel struct {
	ID          string           `gorm:"type:uuid;primaryKey"`
	UserID      string           `gorm:"type:uuid;not null;index"`
	Owner       *authentity.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title       string           `gorm:"size:255;not null"`
	Description *string          `gorm:"type:text"`
	Status      bool             `gorm:"not null;default:false"`
	DueDate     *time.Time       `gorm:"type:date"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}

func fromEntity(t *entity.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToEntity converts the row to a domain task.
func (m *TaskModel) ToEntity() entity.Task {
	var due *time.Time
	if m.DueDate != nil {
		y, mo, d := m.DueDate.Date()
		t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
		due = &t
	}
	return entity.Task{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		DueDate:     due,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
