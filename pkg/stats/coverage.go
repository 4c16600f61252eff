// Package stats 提供周排班统计分析功能
package stats

import (
	"github.com/weekshift/weekshift/pkg/model"
)

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	// 整体覆盖率
	TotalRequired   int     `json:"total_required"`   // 需求总人次
	TotalAssigned   int     `json:"total_assigned"`   // 已分配总人次
	OverallCoverage float64 `json:"overall_coverage"` // 整体覆盖率 (%)

	// 按天统计
	DailyCoverage map[model.Day]DayCoverage `json:"daily_coverage"` // 每日覆盖情况

	// 按班次类型统计
	ShiftCoverage map[model.Shift]float64 `json:"shift_coverage"` // 按班次覆盖率

	// 问题识别
	UnfilledSlots []UnfilledSlot `json:"unfilled_slots"` // 未填满槽位
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Day          model.Day `json:"day"`
	Required     int       `json:"required"`
	Assigned     int       `json:"assigned"`
	CoverageRate float64   `json:"coverage_rate"`
	TotalHours   int       `json:"total_hours"`
}

// UnfilledSlot 未填满槽位
type UnfilledSlot struct {
	Day      model.Day   `json:"day"`
	Shift    model.Shift `json:"shift"`
	Required int         `json:"required"`
	Assigned int         `json:"assigned"`
	Shortage int         `json:"shortage"`
}

// CoverageAnalyzer 覆盖率分析器
type CoverageAnalyzer struct {
	catalog *model.Catalog
}

// NewCoverageAnalyzer 创建覆盖率分析器
func NewCoverageAnalyzer(catalog *model.Catalog) *CoverageAnalyzer {
	return &CoverageAnalyzer{catalog: catalog}
}

// Analyze 分析排班表的需求覆盖情况
func (c *CoverageAnalyzer) Analyze(schedule *model.Schedule) *CoverageMetrics {
	metrics := &CoverageMetrics{
		DailyCoverage: make(map[model.Day]DayCoverage),
		ShiftCoverage: make(map[model.Shift]float64),
	}

	shiftRequired := make(map[model.Shift]int)
	shiftAssigned := make(map[model.Shift]int)

	for _, day := range c.catalog.Days() {
		dayCov := DayCoverage{Day: day}
		for _, shift := range c.catalog.Shifts() {
			required := schedule.Required(day, shift)
			assigned := schedule.Assigned(day, shift)

			dayCov.Required += required
			dayCov.Assigned += assigned
			shiftRequired[shift] += required
			shiftAssigned[shift] += assigned

			if span, ok := c.catalog.Span(shift); ok {
				dayCov.TotalHours += assigned * span.Hours()
			}

			if shortage := schedule.Shortfall(day, shift); shortage > 0 {
				metrics.UnfilledSlots = append(metrics.UnfilledSlots, UnfilledSlot{
					Day:      day,
					Shift:    shift,
					Required: required,
					Assigned: assigned,
					Shortage: shortage,
				})
			}
		}
		dayCov.CoverageRate = rate(dayCov.Assigned, dayCov.Required)
		metrics.DailyCoverage[day] = dayCov
		metrics.TotalRequired += dayCov.Required
		metrics.TotalAssigned += dayCov.Assigned
	}

	for _, shift := range c.catalog.Shifts() {
		metrics.ShiftCoverage[shift] = rate(shiftAssigned[shift], shiftRequired[shift])
	}
	metrics.OverallCoverage = rate(metrics.TotalAssigned, metrics.TotalRequired)

	return metrics
}

// rate 计算百分比，分母为 0 时按全覆盖处理
func rate(assigned, required int) float64 {
	if required == 0 {
		return 100
	}
	r := float64(assigned) / float64(required) * 100
	if r > 100 {
		r = 100
	}
	return r
}
