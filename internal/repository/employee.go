// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// EmployeeRecord 员工持久化记录
type EmployeeRecord struct {
	Name            string    `json:"name"`
	MaxShifts       int       `json:"maxShifts"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EmployeeRepository 员工仓储
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository 创建员工仓储
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Save 保存员工，按姓名覆盖
func (r *EmployeeRepository) Save(ctx context.Context, e *model.Employee) error {
	now := time.Now()
	query := `
		INSERT INTO employees (name, max_shifts, background_color, text_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (name) DO UPDATE SET
			max_shifts = EXCLUDED.max_shifts,
			background_color = EXCLUDED.background_color,
			text_color = EXCLUDED.text_color,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		e.Name(), e.MaxShifts(), e.BackgroundColor(), e.TextColor(), now,
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "保存员工失败")
	}
	return nil
}

// GetByName 根据姓名获取员工记录
func (r *EmployeeRepository) GetByName(ctx context.Context, name string) (*EmployeeRecord, error) {
	query := `
		SELECT name, max_shifts, background_color, text_color, created_at, updated_at
		FROM employees
		WHERE name = $1
	`

	var rec EmployeeRecord
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&rec.Name, &rec.MaxShifts, &rec.BackgroundColor, &rec.TextColor,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("员工", name)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "查询员工失败")
	}
	return &rec, nil
}

// List 返回全部员工记录，按创建时间排序
func (r *EmployeeRepository) List(ctx context.Context) ([]*EmployeeRecord, error) {
	query := `
		SELECT name, max_shifts, background_color, text_color, created_at, updated_at
		FROM employees
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "查询员工列表失败")
	}
	defer rows.Close()

	var records []*EmployeeRecord
	for rows.Next() {
		var rec EmployeeRecord
		if err := rows.Scan(
			&rec.Name, &rec.MaxShifts, &rec.BackgroundColor, &rec.TextColor,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "读取员工记录失败")
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "遍历员工记录失败")
	}
	return records, nil
}

// Delete 按姓名删除员工
func (r *EmployeeRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE name = $1`, name)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "删除员工失败")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("员工", name)
	}
	return nil
}
