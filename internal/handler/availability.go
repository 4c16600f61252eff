// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// SubmitAvailabilityRequest 空闲时间提交请求
type SubmitAvailabilityRequest struct {
	Employee        string                      `json:"employee"`
	WeekStarting    string                      `json:"weekStarting"`
	AvailableShifts map[model.Day][]model.Shift `json:"availableShifts"`
	Notes           string                      `json:"notes,omitempty"`
}

// SubmitAvailability 提交空闲时间，同员工同周覆盖旧提交
func (a *API) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SubmitAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, apperrors.Wrap(err, apperrors.CodeInvalidInput, "解析请求失败"))
		return
	}

	req.Employee = strings.TrimSpace(req.Employee)
	if req.Employee == "" {
		respondError(w, r, apperrors.InvalidInput("employee", "员工姓名不能为空"))
		return
	}
	if req.WeekStarting == "" {
		respondError(w, r, apperrors.InvalidInput("weekStarting", "缺少周标识"))
		return
	}

	sub := &model.AvailabilitySubmission{
		Employee:        req.Employee,
		WeekStarting:    req.WeekStarting,
		AvailableShifts: req.AvailableShifts,
		Notes:           req.Notes,
		SubmittedOn:     time.Now(),
	}
	sub.Normalize(a.catalog)

	if err := a.availability.Upsert(r.Context(), sub); err != nil {
		respondError(w, r, err)
		return
	}

	// 首次提交的员工顺带入库
	e := model.NewEmployee(req.Employee, a.catalog, a.rules)
	if rec, err := a.employees.GetByName(r.Context(), req.Employee); err == nil {
		e.SetMaxShifts(rec.MaxShifts)
	}
	if err := a.employees.Save(r.Context(), e); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, sub)
}

// GetAvailability 查询某周全部空闲时间提交
func (a *API) GetAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	subs, err := a.availability.GetByWeek(r.Context(), week)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":        week,
		"submissions": subs,
	})
}

// DeleteAvailability 删除某员工某周的提交
func (a *API) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持DELETE方法"))
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	employee := r.URL.Query().Get("employee")
	if employee == "" {
		respondError(w, r, apperrors.InvalidInput("employee", "缺少员工姓名"))
		return
	}

	if err := a.availability.Delete(r.Context(), employee, week); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
