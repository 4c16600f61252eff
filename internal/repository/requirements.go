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

// RequirementsRepository 人数需求表仓储
type RequirementsRepository struct {
	db DB
}

// NewRequirementsRepository 创建需求表仓储
func NewRequirementsRepository(db DB) *RequirementsRepository {
	return &RequirementsRepository{db: db}
}

// Save 保存某周的需求表，按周覆盖
func (r *RequirementsRepository) Save(ctx context.Context, weekStarting string, req *model.Requirements) error {
	data, err := json.Marshal(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "序列化需求表失败")
	}

	query := `
		INSERT INTO requirements (week_starting, required, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (week_starting) DO UPDATE SET
			required = EXCLUDED.required,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, weekStarting, data, time.Now()); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "保存需求表失败")
	}
	return nil
}

// Get 读取某周的需求表。
// 无记录时返回默认需求，未覆盖的组合也回落到默认值。
func (r *RequirementsRepository) Get(ctx context.Context, weekStarting string, catalog *model.Catalog) (*model.Requirements, error) {
	req := model.NewRequirements(catalog)

	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT required FROM requirements WHERE week_starting = $1`, weekStarting,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return req, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "查询需求表失败")
	}

	if err := json.Unmarshal(data, req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "解析需求表失败")
	}
	return req, nil
}
