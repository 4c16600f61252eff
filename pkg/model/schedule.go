package model

import (
	"encoding/json"
	"errors"
)

// Schedule 一周排班结果：每天每班次的员工名单，附带生成时的需求快照，
// 手工调整后统计仍与需求保持一致。
type Schedule struct {
	week        string
	catalog     *Catalog
	slots       map[Day]map[Shift][]string
	required    map[Day]map[Shift]int
	perEmployee map[string]int
	total       int
}

// ScheduleStats 排班统计
type ScheduleStats struct {
	TotalAssignedShifts int            `json:"totalAssignedShifts"`
	UnfilledPositions   int            `json:"unfilledPositions"`
	EmployeeStats       map[string]int `json:"employeeStats"`
}

// NewSchedule 创建空排班表并固定需求快照
func NewSchedule(week string, catalog *Catalog, requirements *Requirements) *Schedule {
	s := &Schedule{
		week:        week,
		catalog:     catalog,
		slots:       make(map[Day]map[Shift][]string),
		required:    make(map[Day]map[Shift]int),
		perEmployee: make(map[string]int),
	}
	for _, day := range catalog.Days() {
		s.slots[day] = make(map[Shift][]string)
		s.required[day] = make(map[Shift]int)
		for _, shift := range catalog.Shifts() {
			s.required[day][shift] = requirements.Get(day, shift)
		}
	}
	return s
}

// Week 返回周标识
func (s *Schedule) Week() string { return s.week }

// Add 把员工分配到某天某班次：先经员工自身校验，通过后记入名单
func (s *Schedule) Add(e *Employee, day Day, shift Shift) error {
	if err := e.Assign(day, shift); err != nil {
		return err
	}
	s.record(e.Name(), day, shift)
	return nil
}

// record 只更新名单与计数，不触碰员工状态
func (s *Schedule) record(name string, day Day, shift Shift) {
	s.slots[day][shift] = append(s.slots[day][shift], name)
	s.perEmployee[name]++
	s.total++
}

// Remove 把员工从某天某班次移除，名单中不存在则无操作
func (s *Schedule) Remove(e *Employee, day Day, shift Shift) bool {
	names := s.slots[day][shift]
	for i, n := range names {
		if n == e.Name() {
			s.slots[day][shift] = append(names[:i], names[i+1:]...)
			e.RemoveAssignment(day)
			s.perEmployee[n]--
			if s.perEmployee[n] == 0 {
				delete(s.perEmployee, n)
			}
			s.total--
			return true
		}
	}
	return false
}

// Move 把员工的分配从一个槽位移到另一个槽位。
// 目标槽位校验失败时原分配原样保留。
func (s *Schedule) Move(e *Employee, fromDay Day, fromShift Shift, toDay Day, toShift Shift) error {
	if !s.Remove(e, fromDay, fromShift) {
		return &AssignmentError{
			Employee: e.Name(),
			Day:      fromDay,
			Shift:    fromShift,
			Reason:   "no assignment at source position",
		}
	}
	if err := s.Add(e, toDay, toShift); err != nil {
		// 回滚：原槽位是之前刚移出的，重新加入必然通过校验
		if restoreErr := s.Add(e, fromDay, fromShift); restoreErr != nil {
			return restoreErr
		}
		return err
	}
	return nil
}

// Adopt 把员工已有的分配接入名单，不重新校验。
// 用于生成前吸收池中已存在的手工分配。
func (s *Schedule) Adopt(e *Employee) {
	for _, day := range s.catalog.Days() {
		if shift, ok := e.AssignedShift(day); ok {
			s.record(e.Name(), day, shift)
		}
	}
}

// Assignments 返回某天某班次的员工名单副本
func (s *Schedule) Assignments(day Day, shift Shift) []string {
	names := s.slots[day][shift]
	result := make([]string, len(names))
	copy(result, names)
	return result
}

// Required 返回快照中某天某班次的需求人数
func (s *Schedule) Required(day Day, shift Shift) int {
	return s.required[day][shift]
}

// Assigned 返回某天某班次已分配人数
func (s *Schedule) Assigned(day Day, shift Shift) int {
	return len(s.slots[day][shift])
}

// Shortfall 返回某天某班次的缺口人数，超配时为 0
func (s *Schedule) Shortfall(day Day, shift Shift) int {
	gap := s.required[day][shift] - len(s.slots[day][shift])
	if gap < 0 {
		return 0
	}
	return gap
}

// Stats 汇总统计：总分配数、总缺口数、每人分配数
func (s *Schedule) Stats() ScheduleStats {
	stats := ScheduleStats{
		TotalAssignedShifts: s.total,
		EmployeeStats:       make(map[string]int, len(s.perEmployee)),
	}
	for name, count := range s.perEmployee {
		stats.EmployeeStats[name] = count
	}
	for _, day := range s.catalog.Days() {
		for _, shift := range s.catalog.Shifts() {
			stats.UnfilledPositions += s.Shortfall(day, shift)
		}
	}
	return stats
}

// EmployeeHours 返回某员工本表内的总工时
func (s *Schedule) EmployeeHours(name string) int {
	hours := 0
	for _, day := range s.catalog.Days() {
		for _, shift := range s.catalog.Shifts() {
			for _, n := range s.slots[day][shift] {
				if n == name {
					if span, ok := s.catalog.Span(shift); ok {
						hours += span.Hours()
					}
				}
			}
		}
	}
	return hours
}

// scheduleJSON 排班表序列化形式
type scheduleJSON struct {
	Week     string                     `json:"week"`
	Schedule map[Day]map[Shift][]string `json:"schedule"`
}

// MarshalJSON 实现排班表序列化，空槽位省略
func (s *Schedule) MarshalJSON() ([]byte, error) {
	out := make(map[Day]map[Shift][]string)
	for day, shifts := range s.slots {
		for shift, names := range shifts {
			if len(names) == 0 {
				continue
			}
			if out[day] == nil {
				out[day] = make(map[Shift][]string)
			}
			out[day][shift] = names
		}
	}
	return json.Marshal(scheduleJSON{Week: s.week, Schedule: out})
}

// RestoreSkippedFunc 恢复排班时单条分配失败的通知回调
type RestoreSkippedFunc func(employee string, day Day, shift Shift, reason string)

// RestoreSchedule 从序列化数据恢复排班表。
// 每条分配重新走员工校验，失败的单条跳过并通知回调，不中断整体恢复。
func RestoreSchedule(data []byte, catalog *Catalog, requirements *Requirements, pool *Pool, skipped RestoreSkippedFunc) (*Schedule, error) {
	var sj scheduleJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return nil, err
	}

	s := NewSchedule(sj.Week, catalog, requirements)
	for _, day := range catalog.Days() {
		for _, shift := range catalog.Shifts() {
			for _, name := range sj.Schedule[day][shift] {
				e := pool.Get(name)
				if err := s.Add(e, day, shift); err != nil {
					if skipped != nil {
						reason := err.Error()
						var ae *AssignmentError
						if errors.As(err, &ae) {
							reason = ae.Reason
						}
						skipped(name, day, shift, reason)
					}
					continue
				}
			}
		}
	}
	return s, nil
}
