// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/weekshift/weekshift/internal/repository"
	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/logger"
	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler"
	"github.com/weekshift/weekshift/pkg/validator"
)

// API 请求处理器集合，持有共享依赖
type API struct {
	catalog      *model.Catalog
	rules        model.Rules
	generator    *scheduler.Generator
	validator    *validator.ScheduleValidator
	employees    *repository.EmployeeRepository
	availability *repository.AvailabilityRepository
	requirements *repository.RequirementsRepository
	schedules    *repository.ScheduleRepository
}

// New 创建处理器集合
func New(
	catalog *model.Catalog,
	rules model.Rules,
	db repository.DB,
) *API {
	return &API{
		catalog:      catalog,
		rules:        rules,
		generator:    scheduler.NewGenerator(catalog),
		validator:    validator.NewScheduleValidator(catalog, rules),
		employees:    repository.NewEmployeeRepository(db),
		availability: repository.NewAvailabilityRepository(db),
		requirements: repository.NewRequirementsRepository(db),
		schedules:    repository.NewScheduleRepository(db),
	}
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应，服务端错误带请求ID记日志
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.CodeInternal, "内部错误")
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error().
			Err(err).
			Str("code", string(appErr.Code)).
			Str("path", r.URL.Path).
			Msg("请求处理失败")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    appErr.Code,
		"message": appErr.Message,
		"details": appErr.Details,
	})
}

// weekParam 从查询参数提取周标识
func weekParam(r *http.Request) (string, error) {
	week := r.URL.Query().Get("week")
	if week == "" {
		return "", apperrors.InvalidInput("week", "缺少周标识")
	}
	return week, nil
}
