// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// UpdateRequirementsRequest 需求表更新请求。
// 只覆盖给出的组合，其余保留当前值。
type UpdateRequirementsRequest struct {
	WeekStarting string                          `json:"weekStarting"`
	Required     map[model.Day]map[model.Shift]int `json:"required"`
}

// GetRequirements 查询某周需求表，无记录时返回默认需求
func (a *API) GetRequirements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	week, err := weekParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	req, err := a.requirements.Get(r.Context(), week, a.catalog)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":     week,
		"required": req,
		"total":    req.Total(),
	})
}

// UpdateRequirements 更新某周需求表
func (a *API) UpdateRequirements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "仅支持PUT/POST方法"))
		return
	}

	var body UpdateRequirementsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, apperrors.Wrap(err, apperrors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if body.WeekStarting == "" {
		respondError(w, r, apperrors.InvalidInput("weekStarting", "缺少周标识"))
		return
	}

	req, err := a.requirements.Get(r.Context(), body.WeekStarting, a.catalog)
	if err != nil {
		respondError(w, r, err)
		return
	}
	req.Replace(body.Required)

	if err := a.requirements.Save(r.Context(), body.WeekStarting, req); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":     body.WeekStarting,
		"required": req,
		"total":    req.Total(),
	})
}
