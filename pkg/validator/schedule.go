// Package validator 提供排班表完整性验证功能
package validator

import (
	"fmt"

	"github.com/weekshift/weekshift/pkg/model"
)

// ViolationType 违规类型
type ViolationType string

const (
	ViolationDoubleBooked ViolationType = "double_booked" // 同天多班
	ViolationRestPeriod   ViolationType = "rest_period"   // 休息时间不足
	ViolationNightLimit   ViolationType = "night_limit"   // 夜班超限
	ViolationWeeklyLimit  ViolationType = "weekly_limit"  // 周班次超限
	ViolationAvailability ViolationType = "availability"  // 非空闲时段被分配
)

// Violation 违规信息
type Violation struct {
	Type     ViolationType `json:"type"`
	Severity string        `json:"severity"` // error/warning
	Employee string        `json:"employee"`
	Day      model.Day     `json:"day"`
	Shift    model.Shift   `json:"shift,omitempty"`
	Message  string        `json:"message"`
}

// ScheduleValidator 排班表验证器。
// Employee.Assign 已在分配时逐条校验，这里做的是整表复核，
// 用于导入数据或手工改动后确认不变量仍然成立。
type ScheduleValidator struct {
	catalog *model.Catalog
	rules   model.Rules
}

// NewScheduleValidator 创建验证器
func NewScheduleValidator(catalog *model.Catalog, rules model.Rules) *ScheduleValidator {
	return &ScheduleValidator{catalog: catalog, rules: rules}
}

// Validate 验证整张排班表，返回全部违规（按天、班次、名单顺序）
func (v *ScheduleValidator) Validate(schedule *model.Schedule, pool *model.Pool) []Violation {
	var violations []Violation

	type slot struct {
		day   model.Day
		shift model.Shift
	}
	byEmployee := make(map[string][]slot)
	var order []string

	for _, day := range v.catalog.Days() {
		for _, shift := range v.catalog.Shifts() {
			for _, name := range schedule.Assignments(day, shift) {
				if _, seen := byEmployee[name]; !seen {
					order = append(order, name)
				}
				byEmployee[name] = append(byEmployee[name], slot{day: day, shift: shift})
			}
		}
	}

	for _, name := range order {
		slots := byEmployee[name]
		assigned := make(map[model.Day]model.Shift)
		nightCount := 0

		for _, sl := range slots {
			if prev, ok := assigned[sl.day]; ok {
				violations = append(violations, Violation{
					Type:     ViolationDoubleBooked,
					Severity: "error",
					Employee: name,
					Day:      sl.day,
					Shift:    sl.shift,
					Message:  fmt.Sprintf("%s 在 %s 已有班次 %s，又被分配了 %s", name, sl.day, prev, sl.shift),
				})
				continue
			}
			assigned[sl.day] = sl.shift
			if v.catalog.IsNight(sl.shift) {
				nightCount++
			}
		}

		violations = append(violations, v.checkRestPeriods(name, assigned)...)

		if nightCount > v.rules.MaxNightShifts {
			violations = append(violations, Violation{
				Type:     ViolationNightLimit,
				Severity: "error",
				Employee: name,
				Message:  fmt.Sprintf("%s 本周夜班 %d 次，超过上限 %d", name, nightCount, v.rules.MaxNightShifts),
			})
		}

		maxShifts := v.rules.DefaultMaxShifts
		if e, ok := pool.Lookup(name); ok {
			maxShifts = e.MaxShifts()
		}
		if len(assigned) > maxShifts {
			violations = append(violations, Violation{
				Type:     ViolationWeeklyLimit,
				Severity: "error",
				Employee: name,
				Message:  fmt.Sprintf("%s 本周班次 %d 个，超过上限 %d", name, len(assigned), maxShifts),
			})
		}

		violations = append(violations, v.checkAvailability(name, assigned, pool)...)
	}

	return violations
}

// checkRestPeriods 检查相邻两天班次间的休息时长
func (v *ScheduleValidator) checkRestPeriods(name string, assigned map[model.Day]model.Shift) []Violation {
	var violations []Violation
	for _, day := range v.catalog.Days() {
		shift, ok := assigned[day]
		if !ok {
			continue
		}
		prevShift, ok := assigned[v.catalog.PreviousDay(day)]
		if !ok {
			continue
		}
		rest := v.catalog.RestHours(prevShift, shift)
		if rest < v.rules.MinRestHours {
			violations = append(violations, Violation{
				Type:     ViolationRestPeriod,
				Severity: "error",
				Employee: name,
				Day:      day,
				Shift:    shift,
				Message:  fmt.Sprintf("%s 在 %s 的 %s 与前一天班次间仅休息 %d 小时，少于 %d 小时", name, day, shift, rest, v.rules.MinRestHours),
			})
		}
	}
	return violations
}

// checkAvailability 检查分配是否落在员工申报的空闲时段，不在则给出警告
func (v *ScheduleValidator) checkAvailability(name string, assigned map[model.Day]model.Shift, pool *model.Pool) []Violation {
	e, ok := pool.Lookup(name)
	if !ok {
		return nil
	}

	var violations []Violation
	for _, day := range v.catalog.Days() {
		shift, found := assigned[day]
		if !found {
			continue
		}
		if !e.IsAvailable(day, shift) {
			violations = append(violations, Violation{
				Type:     ViolationAvailability,
				Severity: "warning",
				Employee: name,
				Day:      day,
				Shift:    shift,
				Message:  fmt.Sprintf("%s 在 %s 未申报 %s 空闲", name, day, shift),
			})
		}
	}
	return violations
}
