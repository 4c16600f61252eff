// Package model 定义周排班系统的核心数据模型
package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Rules 排班校验阈值（注入 Employee，不做全局查找）
type Rules struct {
	MinRestHours     int // 相邻两天班次间最小休息时长
	MaxNightShifts   int // 每周夜班上限
	DefaultMaxShifts int // 默认每周班次上限
}

// DefaultRules 返回标准阈值
func DefaultRules() Rules {
	return Rules{
		MinRestHours:     8,
		MaxNightShifts:   1,
		DefaultMaxShifts: 3,
	}
}

// 校验失败原因（与已持久化数据兼容，不可更改）
const (
	ReasonAlreadyAssigned  = "Already assigned to a shift on this day"
	ReasonNightLimit       = "Maximum night shifts reached for the week"
	ReasonInsufficientRest = "Insufficient rest period between shifts"
	ReasonWeeklyLimit      = "Maximum weekly shifts reached"
)

// Validation 单次分配的校验结果
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// AssignmentError 分配失败错误，携带校验原因
type AssignmentError struct {
	Employee string
	Day      Day
	Shift    Shift
	Reason   string
}

// Error 实现 error 接口
func (e *AssignmentError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", e.Employee, e.Day, e.Shift, e.Reason)
}

// Employee 员工：持有一周的空闲时间、当前分配，并独立校验新分配是否合法。
// 状态只通过方法访问，Assign 是唯一的合法分配入口（持久化恢复的批量
// 设置除外）。
type Employee struct {
	name            string
	maxShifts       int
	available       map[Day]map[Shift]bool
	assigned        map[Day]Shift
	backgroundColor string
	textColor       string
	catalog         *Catalog
	rules           Rules
}

// NewEmployee 创建员工，展示颜色由姓名确定性推导
func NewEmployee(name string, catalog *Catalog, rules Rules) *Employee {
	bg, text := employeeColors(name)
	return &Employee{
		name:            name,
		maxShifts:       rules.DefaultMaxShifts,
		available:       make(map[Day]map[Shift]bool),
		assigned:        make(map[Day]Shift),
		backgroundColor: bg,
		textColor:       text,
		catalog:         catalog,
		rules:           rules,
	}
}

// Name 返回员工姓名（唯一标识）
func (e *Employee) Name() string { return e.name }

// MaxShifts 返回每周班次上限
func (e *Employee) MaxShifts() int { return e.maxShifts }

// SetMaxShifts 设置每周班次上限，非正数忽略
func (e *Employee) SetMaxShifts(max int) {
	if max > 0 {
		e.maxShifts = max
	}
}

// BackgroundColor 返回展示背景色
func (e *Employee) BackgroundColor() string { return e.backgroundColor }

// TextColor 返回展示文字色
func (e *Employee) TextColor() string { return e.textColor }

// SetAvailability 标记某天某班次为空闲
func (e *Employee) SetAvailability(day Day, shift Shift) {
	if e.available[day] == nil {
		e.available[day] = make(map[Shift]bool)
	}
	e.available[day][shift] = true
}

// RemoveAvailability 移除某天某班次的空闲标记
func (e *Employee) RemoveAvailability(day Day, shift Shift) {
	shifts := e.available[day]
	if shifts == nil {
		return
	}
	delete(shifts, shift)
	if len(shifts) == 0 {
		delete(e.available, day)
	}
}

// ClearAvailability 清空全部空闲时间
func (e *Employee) ClearAvailability() {
	e.available = make(map[Day]map[Shift]bool)
}

// IsAvailable 检查某天某班次是否空闲
func (e *Employee) IsAvailable(day Day, shift Shift) bool {
	return e.available[day][shift]
}

// AvailableShifts 返回某天的空闲班次（目录顺序）
func (e *Employee) AvailableShifts(day Day) []Shift {
	var result []Shift
	for _, s := range e.catalog.Shifts() {
		if e.available[day][s] {
			result = append(result, s)
		}
	}
	return result
}

// AvailableSlotCount 返回整周空闲班次总数
func (e *Employee) AvailableSlotCount() int {
	count := 0
	for _, shifts := range e.available {
		count += len(shifts)
	}
	return count
}

// AllAvailability 导出整周空闲时间
func (e *Employee) AllAvailability() map[Day][]Shift {
	result := make(map[Day][]Shift)
	for day := range e.available {
		result[day] = e.AvailableShifts(day)
	}
	return result
}

// SetAllAvailability 整体替换空闲时间（持久化恢复用，不做校验）
func (e *Employee) SetAllAvailability(availability map[Day][]Shift) {
	e.available = make(map[Day]map[Shift]bool)
	for day, shifts := range availability {
		for _, s := range shifts {
			e.SetAvailability(day, s)
		}
	}
}

// Validate 校验一次分配是否合法，按固定顺序检查，遇到首个失败即返回：
// 当天已有分配 → 夜班到达每周上限 → 与前一天班次休息不足 → 总数到达上限。
func (e *Employee) Validate(day Day, shift Shift) Validation {
	if e.HasAssignmentOn(day) {
		return Validation{Valid: false, Reason: ReasonAlreadyAssigned}
	}

	if e.catalog.IsNight(shift) && e.NightShiftCount() >= e.rules.MaxNightShifts {
		return Validation{Valid: false, Reason: ReasonNightLimit}
	}

	previousDay := e.catalog.PreviousDay(day)
	if previousShift, ok := e.assigned[previousDay]; ok {
		if e.catalog.RestHours(previousShift, shift) < e.rules.MinRestHours {
			return Validation{Valid: false, Reason: ReasonInsufficientRest}
		}
	}

	if e.WeeklyShiftCount() >= e.maxShifts {
		return Validation{Valid: false, Reason: ReasonWeeklyLimit}
	}

	return Validation{Valid: true}
}

// Assign 分配班次，校验失败返回 *AssignmentError。
// 只修改员工自身状态，不感知其他员工。
func (e *Employee) Assign(day Day, shift Shift) error {
	if v := e.Validate(day, shift); !v.Valid {
		return &AssignmentError{
			Employee: e.name,
			Day:      day,
			Shift:    shift,
			Reason:   v.Reason,
		}
	}
	e.assigned[day] = shift
	return nil
}

// RemoveAssignment 移除某天的分配
func (e *Employee) RemoveAssignment(day Day) {
	delete(e.assigned, day)
}

// ClearAssignments 清空全部分配
func (e *Employee) ClearAssignments() {
	e.assigned = make(map[Day]Shift)
}

// AssignedShift 返回某天的分配班次
func (e *Employee) AssignedShift(day Day) (Shift, bool) {
	s, ok := e.assigned[day]
	return s, ok
}

// HasAssignmentOn 检查某天是否已有分配
func (e *Employee) HasAssignmentOn(day Day) bool {
	_, ok := e.assigned[day]
	return ok
}

// WeeklyShiftCount 返回本周已分配班次数
func (e *Employee) WeeklyShiftCount() int {
	return len(e.assigned)
}

// NightShiftCount 返回本周已分配夜班数
func (e *Employee) NightShiftCount() int {
	count := 0
	for _, s := range e.assigned {
		if e.catalog.IsNight(s) {
			count++
		}
	}
	return count
}

// NightCapReached 判断本周夜班是否已达上限
func (e *Employee) NightCapReached() bool {
	return e.NightShiftCount() >= e.rules.MaxNightShifts
}

// AllAssignments 导出整周分配
func (e *Employee) AllAssignments() map[Day]Shift {
	result := make(map[Day]Shift, len(e.assigned))
	for day, s := range e.assigned {
		result[day] = s
	}
	return result
}

// SetAllAssignments 整体替换分配（可信来源加载用，绕过校验，
// 调用方负责不引入破坏不变量的状态）。
func (e *Employee) SetAllAssignments(assignments map[Day]Shift) {
	e.assigned = make(map[Day]Shift, len(assignments))
	for day, s := range assignments {
		e.assigned[day] = s
	}
}

// ConstraintScore 返回整周空闲为空的天数，用于生成时的约束度排序
func (e *Employee) ConstraintScore() int {
	count := 0
	for _, day := range e.catalog.Days() {
		if len(e.available[day]) == 0 {
			count++
		}
	}
	return count
}

// employeeJSON 员工序列化形式（与已持久化数据兼容）
type employeeJSON struct {
	Name            string          `json:"name"`
	MaxShifts       int             `json:"maxShifts"`
	BackgroundColor string          `json:"backgroundColor"`
	TextColor       string          `json:"textColor"`
	AvailableShifts map[Day][]Shift `json:"availableShifts"`
	AssignedShifts  map[Day]Shift   `json:"assignedShifts"`
}

// MarshalJSON 实现员工序列化
func (e *Employee) MarshalJSON() ([]byte, error) {
	return json.Marshal(employeeJSON{
		Name:            e.name,
		MaxShifts:       e.maxShifts,
		BackgroundColor: e.backgroundColor,
		TextColor:       e.textColor,
		AvailableShifts: e.AllAvailability(),
		AssignedShifts:  e.AllAssignments(),
	})
}

// EmployeeFromJSON 从序列化数据恢复员工，保留存储中的颜色
func EmployeeFromJSON(data []byte, catalog *Catalog, rules Rules) (*Employee, error) {
	var ej employeeJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return nil, fmt.Errorf("解析员工数据失败: %w", err)
	}
	if ej.Name == "" {
		return nil, fmt.Errorf("员工数据缺少姓名")
	}

	e := NewEmployee(ej.Name, catalog, rules)
	e.SetMaxShifts(ej.MaxShifts)
	if ej.BackgroundColor != "" && ej.TextColor != "" {
		e.backgroundColor = ej.BackgroundColor
		e.textColor = ej.TextColor
	}
	e.SetAllAvailability(ej.AvailableShifts)
	e.SetAllAssignments(ej.AssignedShifts)
	return e, nil
}

// sortShifts 按目录顺序排序班次（未知班次排最后）
func sortShifts(catalog *Catalog, shifts []Shift) {
	order := make(map[Shift]int)
	for i, s := range catalog.Shifts() {
		order[s] = i
	}
	sort.SliceStable(shifts, func(i, j int) bool {
		oi, iok := order[shifts[i]]
		oj, jok := order[shifts[j]]
		if iok != jok {
			return iok
		}
		return oi < oj
	})
}
