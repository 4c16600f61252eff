package model

import "testing"

func TestShiftSpan_Hours(t *testing.T) {
	tests := []struct {
		name     string
		span     ShiftSpan
		expected int
	}{
		{"早班A 8小时", ShiftSpan{Start: 7, End: 15}, 8},
		{"早班B 8小时", ShiftSpan{Start: 9, End: 17}, 8},
		{"午班 8小时", ShiftSpan{Start: 15, End: 23}, 8},
		{"跨天夜班 8小时", ShiftSpan{Start: 23, End: 7}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.span.Hours(); result != tt.expected {
				t.Errorf("Hours() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestCatalog_RestHours(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name     string
		prev     Shift
		next     Shift
		expected int
	}{
		{"夜班接早班A 休息0小时", ShiftNight, ShiftMorningA, 0},
		{"夜班接早班B 休息2小时", ShiftNight, ShiftMorningB, 2},
		{"夜班接午班 休息8小时", ShiftNight, ShiftNoon, 8},
		{"午班接早班A 休息8小时", ShiftNoon, ShiftMorningA, 8},
		{"午班接早班B 休息10小时", ShiftNoon, ShiftMorningB, 10},
		{"早班A接夜班 休息8小时", ShiftMorningA, ShiftNight, 8},
		{"午班接午班 休息16小时", ShiftNoon, ShiftNoon, 16},
		{"早班A接早班A 休息16小时", ShiftMorningA, ShiftMorningA, 16},
		{"早班A接早班B 跨日折算18小时", ShiftMorningA, ShiftMorningB, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := catalog.RestHours(tt.prev, tt.next); result != tt.expected {
				t.Errorf("RestHours(%s, %s) = %v, expected %v", tt.prev, tt.next, result, tt.expected)
			}
		})
	}
}

func TestCatalog_RestHoursUnknownShift(t *testing.T) {
	catalog := NewCatalog()

	// 未知班次按不限制休息处理，不阻塞排班
	if result := catalog.RestHours(Shift("Unknown"), ShiftMorningA); result != 24 {
		t.Errorf("RestHours(未知班次) = %v, expected 24", result)
	}
}

func TestCatalog_PreviousDay(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name     string
		day      Day
		expected Day
	}{
		{"周一的前一天是周日", DayMonday, DaySunday},
		{"周日的前一天是周六", DaySunday, DaySaturday},
		{"周六的前一天是周五", DaySaturday, DayFriday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := catalog.PreviousDay(tt.day); result != tt.expected {
				t.Errorf("PreviousDay(%s) = %v, expected %v", tt.day, result, tt.expected)
			}
		})
	}
}

func TestCatalog_IsNight(t *testing.T) {
	catalog := NewCatalog()

	if !catalog.IsNight(ShiftNight) {
		t.Error("夜班应返回true")
	}
	if catalog.IsNight(ShiftMorningA) {
		t.Error("早班A应返回false")
	}
}

func TestCatalog_DaysOrder(t *testing.T) {
	catalog := NewCatalog()
	days := catalog.Days()

	if len(days) != 7 {
		t.Fatalf("Days() 返回 %d 天, expected 7", len(days))
	}
	if days[0] != DaySunday {
		t.Errorf("一周从 %s 开始, expected %s", days[0], DaySunday)
	}
	if days[6] != DaySaturday {
		t.Errorf("一周以 %s 结束, expected %s", days[6], DaySaturday)
	}
}

func TestCatalog_ValidShift(t *testing.T) {
	catalog := NewCatalog()

	if !catalog.ValidShift(ShiftNoon) {
		t.Error("午班应为有效班次")
	}
	if catalog.ValidShift(Shift("Afternoon")) {
		t.Error("未知班次应为无效")
	}
}
