// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/weekshift/weekshift/internal/metrics"
	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/stats"
)

// GetCoverage 返回某周排班的需求覆盖分析
func (a *API) GetCoverage(w http.ResponseWriter, r *http.Request) {
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

	analyzer := stats.NewCoverageAnalyzer(a.catalog)
	result := analyzer.Analyze(schedule)

	metrics.SetCoverageRate(week, result.OverallCoverage)

	respondJSON(w, http.StatusOK, result)
}

// GetFairness 返回某周排班的公平性分析
func (a *API) GetFairness(w http.ResponseWriter, r *http.Request) {
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

	analyzer := stats.NewFairnessAnalyzer(a.catalog)
	result := analyzer.Analyze(schedule, pool)

	metrics.SetFairnessGini(week, "workload", result.WorkloadGini)
	metrics.SetFairnessGini(week, "night_shift", result.NightShiftGini)

	respondJSON(w, http.StatusOK, result)
}
