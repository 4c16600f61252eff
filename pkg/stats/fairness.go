// Package stats 提供周排班统计分析功能
package stats

import (
	"math"
	"sort"

	"github.com/weekshift/weekshift/pkg/model"
)

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	// 工时公平性
	WorkloadGini        float64 `json:"workload_gini"`          // 工时基尼系数 (0=完全公平, 1=完全不公平)
	WorkloadStdDev      float64 `json:"workload_std_dev"`       // 工时标准差
	AvgHoursPerEmployee float64 `json:"avg_hours_per_employee"` // 人均工时
	MaxHours            int     `json:"max_hours"`              // 最大工时
	MinHours            int     `json:"min_hours"`              // 最小工时

	// 夜班公平性
	NightShiftGini float64 `json:"night_shift_gini"` // 夜班分配基尼系数

	// 员工级别统计
	EmployeeStats []EmployeeStat `json:"employee_stats"` // 员工统计（姓名排序）

	// 综合评分
	OverallFairnessScore float64 `json:"overall_fairness_score"` // 综合公平性评分 (0-100)
}

// EmployeeStat 员工统计
type EmployeeStat struct {
	Name        string  `json:"name"`
	TotalHours  int     `json:"total_hours"`
	ShiftCount  int     `json:"shift_count"`
	NightShifts int     `json:"night_shifts"`
	Deviation   float64 `json:"deviation"` // 与人均工时的偏差百分比
}

// FairnessAnalyzer 公平性分析器
type FairnessAnalyzer struct {
	catalog *model.Catalog
}

// NewFairnessAnalyzer 创建公平性分析器
func NewFairnessAnalyzer(catalog *model.Catalog) *FairnessAnalyzer {
	return &FairnessAnalyzer{catalog: catalog}
}

// Analyze 分析排班分配在员工间的公平程度。
// 只统计池中有分配的员工，空排班返回满分。
func (f *FairnessAnalyzer) Analyze(schedule *model.Schedule, pool *model.Pool) *FairnessMetrics {
	var employeeStats []EmployeeStat
	for _, e := range pool.Employees() {
		if e.WeeklyShiftCount() == 0 {
			continue
		}
		employeeStats = append(employeeStats, EmployeeStat{
			Name:        e.Name(),
			TotalHours:  schedule.EmployeeHours(e.Name()),
			ShiftCount:  e.WeeklyShiftCount(),
			NightShifts: e.NightShiftCount(),
		})
	}

	if len(employeeStats) == 0 {
		return &FairnessMetrics{OverallFairnessScore: 100}
	}

	sort.Slice(employeeStats, func(i, j int) bool {
		return employeeStats[i].Name < employeeStats[j].Name
	})

	hours := make([]float64, len(employeeStats))
	nights := make([]float64, len(employeeStats))
	for i, stat := range employeeStats {
		hours[i] = float64(stat.TotalHours)
		nights[i] = float64(stat.NightShifts)
	}

	avgHours := mean(hours)
	stdDev := math.Sqrt(variance(hours, avgHours))
	maxHours, minHours := extremes(hours)

	for i := range employeeStats {
		if avgHours > 0 {
			employeeStats[i].Deviation = (float64(employeeStats[i].TotalHours) - avgHours) / avgHours * 100
		}
	}

	workloadGini := gini(hours)
	nightGini := gini(nights)

	return &FairnessMetrics{
		WorkloadGini:         workloadGini,
		WorkloadStdDev:       stdDev,
		AvgHoursPerEmployee:  avgHours,
		MaxHours:             int(maxHours),
		MinHours:             int(minHours),
		NightShiftGini:       nightGini,
		EmployeeStats:        employeeStats,
		OverallFairnessScore: overallScore(workloadGini, nightGini),
	}
}

// mean 计算均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance 计算方差
func variance(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(values))
}

// extremes 返回最大最小值
func extremes(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return max, min
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	total := 0.0
	weighted := 0.0
	for i, v := range sorted {
		total += v
		weighted += float64(i+1) * v
	}
	if total == 0 {
		return 0
	}

	return (2*weighted)/(float64(n)*total) - float64(n+1)/float64(n)
}

// overallScore 由工时与夜班基尼系数折算 0-100 评分
func overallScore(workloadGini, nightGini float64) float64 {
	score := 100 - workloadGini*70 - nightGini*30
	if score < 0 {
		score = 0
	}
	return score
}
