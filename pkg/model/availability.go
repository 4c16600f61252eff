package model

import "time"

// AvailabilitySubmission 员工提交的一周空闲时间。
// 同一员工同一周重复提交时整体覆盖旧记录。
type AvailabilitySubmission struct {
	Employee        string          `json:"employee"`
	WeekStarting    string          `json:"weekStarting"`
	AvailableShifts map[Day][]Shift `json:"availableShifts"`
	Notes           string          `json:"notes,omitempty"`
	SubmittedOn     time.Time       `json:"submittedOn"`
}

// Normalize 去除未知的天与班次，并按目录顺序排列各天班次
func (s *AvailabilitySubmission) Normalize(catalog *Catalog) {
	cleaned := make(map[Day][]Shift)
	for day, shifts := range s.AvailableShifts {
		if !catalog.ValidDay(day) {
			continue
		}
		var valid []Shift
		seen := make(map[Shift]bool)
		for _, shift := range shifts {
			if catalog.ValidShift(shift) && !seen[shift] {
				valid = append(valid, shift)
				seen[shift] = true
			}
		}
		if len(valid) > 0 {
			sortShifts(catalog, valid)
			cleaned[day] = valid
		}
	}
	s.AvailableShifts = cleaned
}

// SlotCount 返回提交中的空闲班次总数
func (s *AvailabilitySubmission) SlotCount() int {
	count := 0
	for _, shifts := range s.AvailableShifts {
		count += len(shifts)
	}
	return count
}
