// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/weekshift/weekshift/internal/metrics"
	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/logger"
	"github.com/weekshift/weekshift/pkg/model"
)

// GenerateScheduleRequest 排班生成请求
type GenerateScheduleRequest struct {
	WeekStarting string `json:"weekStarting"`
}

// GenerateScheduleResponse 排班生成响应
type GenerateScheduleResponse struct {
	Success  bool                 `json:"success"`
	Week     string               `json:"week"`
	Schedule *model.Schedule      `json:"schedule"`
	Stats    model.ScheduleStats  `json:"stats"`
	Duration string               `json:"duration"`
}

// GenerateSchedule 为某周生成排班并保存
func (a *API) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, apperrors.Wrap(err, apperrors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.WeekStarting == "" {
		respondError(w, r, apperrors.InvalidInput("weekStarting", "缺少周标识"))
		return
	}

	pool, requirements, err := a.loadWeek(r.Context(), req.WeekStarting)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := a.generator.Generate(req.WeekStarting, pool, requirements)
	if err != nil {
		metrics.RecordScheduleGeneration(false, 0)
		respondError(w, r, err)
		return
	}

	metrics.RecordScheduleGeneration(true, result.Duration)
	metrics.SetUnfilledPositions(req.WeekStarting, result.Stats.UnfilledPositions)

	if err := a.schedules.Save(r.Context(), result.Schedule); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, GenerateScheduleResponse{
		Success:  true,
		Week:     req.WeekStarting,
		Schedule: result.Schedule,
		Stats:    result.Stats,
		Duration: result.Duration.String(),
	})
}

// GetSchedule 查询某周排班表及统计
func (a *API) GetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	schedule, _, err := a.restoreWeek(r.Context(), week)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"schedule": schedule,
		"stats":    schedule.Stats(),
	})
}

// DeleteSchedule 删除某周排班表
func (a *API) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持DELETE方法"))
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := a.schedules.Delete(r.Context(), week); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// ListScheduleWeeks 返回已有排班表的周列表
func (a *API) ListScheduleWeeks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	weeks, err := a.schedules.Weeks(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"weeks": weeks})
}

// MoveAssignmentRequest 手工调整请求
type MoveAssignmentRequest struct {
	WeekStarting string      `json:"weekStarting"`
	Employee     string      `json:"employee"`
	FromDay      model.Day   `json:"fromDay"`
	FromShift    model.Shift `json:"fromShift"`
	ToDay        model.Day   `json:"toDay"`
	ToShift      model.Shift `json:"toShift"`
}

// MoveAssignment 手工把一条分配移到另一个槽位，目标不合法时保持原状
func (a *API) MoveAssignment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req MoveAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, apperrors.Wrap(err, apperrors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.WeekStarting == "" {
		respondError(w, r, apperrors.InvalidInput("weekStarting", "缺少周标识"))
		return
	}
	if !a.catalog.ValidDay(req.ToDay) || !a.catalog.ValidShift(req.ToShift) {
		respondError(w, r, apperrors.InvalidInput("toDay/toShift", "未知的天或班次"))
		return
	}

	schedule, pool, err := a.restoreWeek(r.Context(), req.WeekStarting)
	if err != nil {
		respondError(w, r, err)
		return
	}

	e, ok := pool.Lookup(req.Employee)
	if !ok {
		respondError(w, r, apperrors.NotFound("员工", req.Employee))
		return
	}

	if err := schedule.Move(e, req.FromDay, req.FromShift, req.ToDay, req.ToShift); err != nil {
		var ae *model.AssignmentError
		if errors.As(err, &ae) {
			respondError(w, r, apperrors.AssignmentInvalid(ae.Employee, string(ae.Day), string(ae.Shift), ae.Reason))
			return
		}
		respondError(w, r, err)
		return
	}

	if err := a.schedules.Save(r.Context(), schedule); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"schedule": schedule,
		"stats":    schedule.Stats(),
	})
}

// ValidateSchedule 复核某周排班表的不变量
func (a *API) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	schedule, pool, err := a.restoreWeek(r.Context(), week)
	if err != nil {
		respondError(w, r, err)
		return
	}

	violations := a.validator.Validate(schedule, pool)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":       week,
		"valid":      len(violations) == 0,
		"violations": violations,
	})
}

// loadWeek 构建某周的员工池与需求表：员工档案提供班次上限，
// 空闲提交填充可用时间。
func (a *API) loadWeek(ctx context.Context, week string) (*model.Pool, *model.Requirements, error) {
	pool := model.NewPool(a.catalog, a.rules)

	records, err := a.employees.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range records {
		e := pool.Get(rec.Name)
		e.SetMaxShifts(rec.MaxShifts)
	}

	subs, err := a.availability.GetByWeek(ctx, week)
	if err != nil {
		return nil, nil, err
	}
	pool.LoadAvailability(subs)

	requirements, err := a.requirements.Get(ctx, week, a.catalog)
	if err != nil {
		return nil, nil, err
	}
	return pool, requirements, nil
}

// restoreWeek 从持久化数据恢复某周排班表，逐条重放员工校验
func (a *API) restoreWeek(ctx context.Context, week string) (*model.Schedule, *model.Pool, error) {
	pool, requirements, err := a.loadWeek(ctx, week)
	if err != nil {
		return nil, nil, err
	}

	data, err := a.schedules.GetRaw(ctx, week)
	if err != nil {
		return nil, nil, err
	}

	log := logger.NewSchedulerLogger()
	schedule, err := model.RestoreSchedule(data, a.catalog, requirements, pool,
		func(employee string, day model.Day, shift model.Shift, reason string) {
			log.RestoreSkipped(employee, string(day), string(shift), reason)
			metrics.RecordAssignmentSkip(reason)
		})
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeInternal, "恢复排班表失败")
	}
	return schedule, pool, nil
}
