// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// AvailabilityRepository 空闲时间提交仓储
type AvailabilityRepository struct {
	db DB
}

// NewAvailabilityRepository 创建空闲时间提交仓储
func NewAvailabilityRepository(db DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// Upsert 保存提交，同一员工同一周整体覆盖
func (r *AvailabilityRepository) Upsert(ctx context.Context, sub *model.AvailabilitySubmission) error {
	shiftsJSON, err := json.Marshal(sub.AvailableShifts)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "序列化空闲时间失败")
	}

	query := `
		INSERT INTO availability_submissions (employee, week_starting, available_shifts, notes, submitted_on)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee, week_starting) DO UPDATE SET
			available_shifts = EXCLUDED.available_shifts,
			notes = EXCLUDED.notes,
			submitted_on = EXCLUDED.submitted_on
	`

	_, err = r.db.ExecContext(ctx, query,
		sub.Employee, sub.WeekStarting, shiftsJSON, sub.Notes, sub.SubmittedOn,
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "保存空闲时间提交失败")
	}
	return nil
}

// GetByWeek 返回某周全部提交，按提交时间排序
func (r *AvailabilityRepository) GetByWeek(ctx context.Context, weekStarting string) ([]*model.AvailabilitySubmission, error) {
	query := `
		SELECT employee, week_starting, available_shifts, notes, submitted_on
		FROM availability_submissions
		WHERE week_starting = $1
		ORDER BY submitted_on ASC
	`

	rows, err := r.db.QueryContext(ctx, query, weekStarting)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "查询空闲时间提交失败")
	}
	defer rows.Close()

	var subs []*model.AvailabilitySubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "遍历空闲时间提交失败")
	}
	return subs, nil
}

// GetByEmployeeWeek 返回某员工某周的提交
func (r *AvailabilityRepository) GetByEmployeeWeek(ctx context.Context, employee, weekStarting string) (*model.AvailabilitySubmission, error) {
	query := `
		SELECT employee, week_starting, available_shifts, notes, submitted_on
		FROM availability_submissions
		WHERE employee = $1 AND week_starting = $2
	`

	row := r.db.QueryRowContext(ctx, query, employee, weekStarting)
	sub, err := scanSubmission(row)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return nil, apperrors.NotFound("空闲时间提交", employee)
		}
		return nil, err
	}
	return sub, nil
}

// Delete 删除某员工某周的提交
func (r *AvailabilityRepository) Delete(ctx context.Context, employee, weekStarting string) error {
	query := `DELETE FROM availability_submissions WHERE employee = $1 AND week_starting = $2`
	result, err := r.db.ExecContext(ctx, query, employee, weekStarting)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "删除空闲时间提交失败")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("空闲时间提交", employee)
	}
	return nil
}

// scanner 兼容 *sql.Row 与 *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSubmission 读取单条提交记录
func scanSubmission(s scanner) (*model.AvailabilitySubmission, error) {
	var sub model.AvailabilitySubmission
	var shiftsJSON []byte
	err := s.Scan(&sub.Employee, &sub.WeekStarting, &shiftsJSON, &sub.Notes, &sub.SubmittedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.CodeNotFound, "记录不存在")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "读取空闲时间提交失败")
	}
	if err := json.Unmarshal(shiftsJSON, &sub.AvailableShifts); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "解析空闲时间失败")
	}
	return &sub, nil
}
