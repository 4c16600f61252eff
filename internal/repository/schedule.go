// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// ScheduleRepository 排班表仓储
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository 创建排班表仓储
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Save 保存某周排班表，按周覆盖
func (r *ScheduleRepository) Save(ctx context.Context, s *model.Schedule) error {
	data, err := json.Marshal(s)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "序列化排班表失败")
	}

	query := `
		INSERT INTO schedules (week_starting, schedule, generated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (week_starting) DO UPDATE SET
			schedule = EXCLUDED.schedule,
			generated_at = EXCLUDED.generated_at
	`

	if _, err := r.db.ExecContext(ctx, query, s.Week(), data, time.Now()); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "保存排班表失败")
	}
	return nil
}

// GetRaw 读取某周排班表的序列化数据。
// 恢复为 Schedule 需要员工池配合重放校验，由调用方完成。
func (r *ScheduleRepository) GetRaw(ctx context.Context, weekStarting string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT schedule FROM schedules WHERE week_starting = $1`, weekStarting,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.CodeScheduleNotFound, "该周没有已生成的排班表")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "查询排班表失败")
	}
	return data, nil
}

// Delete 删除某周排班表
func (r *ScheduleRepository) Delete(ctx context.Context, weekStarting string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE week_starting = $1`, weekStarting)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "删除排班表失败")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.New(apperrors.CodeScheduleNotFound, "该周没有已生成的排班表")
	}
	return nil
}

// Weeks 返回已有排班表的周列表，按周倒序
func (r *ScheduleRepository) Weeks(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT week_starting FROM schedules ORDER BY week_starting DESC`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "查询排班周列表失败")
	}
	defer rows.Close()

	var weeks []string
	for rows.Next() {
		var week string
		if err := rows.Scan(&week); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "读取排班周失败")
		}
		weeks = append(weeks, week)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "遍历排班周失败")
	}
	return weeks, nil
}
