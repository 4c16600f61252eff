// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// ListEmployees 返回全部员工档案
func (a *API) ListEmployees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	records, err := a.employees.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"employees": records})
}

// UpdateEmployeeRequest 员工档案更新请求
type UpdateEmployeeRequest struct {
	Name      string `json:"name"`
	MaxShifts int    `json:"maxShifts"`
}

// UpdateEmployee 创建或更新员工档案
func (a *API) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持PUT/POST方法"))
		return
	}

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, apperrors.Wrap(err, apperrors.CodeInvalidInput, "解析请求失败"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, r, apperrors.InvalidInput("name", "员工姓名不能为空"))
		return
	}

	e := model.NewEmployee(req.Name, a.catalog, a.rules)
	e.SetMaxShifts(req.MaxShifts)

	if err := a.employees.Save(r.Context(), e); err != nil {
		respondError(w, r, err)
		return
	}

	rec, err := a.employees.GetByName(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// DeleteEmployee 删除员工档案
func (a *API) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持DELETE方法"))
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, r, apperrors.InvalidInput("name", "缺少员工姓名"))
		return
	}

	if err := a.employees.Delete(r.Context(), name); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
