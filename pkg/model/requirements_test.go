package model

import (
	"encoding/json"
	"testing"
)

func TestRequirements_Defaults(t *testing.T) {
	catalog := NewCatalog()
	r := NewRequirements(catalog)

	tests := []struct {
		shift    Shift
		expected int
	}{
		{ShiftMorningA, 3},
		{ShiftMorningB, 2},
		{ShiftNoon, 3},
		{ShiftNight, 2},
	}

	for _, day := range catalog.Days() {
		for _, tt := range tests {
			if got := r.Get(day, tt.shift); got != tt.expected {
				t.Errorf("Get(%s, %s) = %d, expected %d", day, tt.shift, got, tt.expected)
			}
		}
	}

	if r.Total() != 70 {
		t.Errorf("Total() = %d, expected 70", r.Total())
	}
	if r.DayTotal(DayMonday) != 10 {
		t.Errorf("DayTotal() = %d, expected 10", r.DayTotal(DayMonday))
	}
	if r.ShiftTotal(ShiftNight) != 14 {
		t.Errorf("ShiftTotal(Night) = %d, expected 14", r.ShiftTotal(ShiftNight))
	}
}

func TestRequirements_SetClampsNegative(t *testing.T) {
	r := NewRequirements(NewCatalog())

	r.Set(DayMonday, ShiftNoon, -5)
	if got := r.Get(DayMonday, ShiftNoon); got != 0 {
		t.Errorf("负数需求应按0处理, got %d", got)
	}

	r.Set(DayMonday, ShiftNoon, 7)
	if got := r.Get(DayMonday, ShiftNoon); got != 7 {
		t.Errorf("Get() = %d, expected 7", got)
	}
}

func TestRequirements_SetIgnoresUnknown(t *testing.T) {
	r := NewRequirements(NewCatalog())

	r.Set(Day("Someday"), ShiftNoon, 9)
	r.Set(DayMonday, Shift("Afternoon"), 9)

	if r.Total() != 70 {
		t.Errorf("未知组合不应影响总数, Total() = %d", r.Total())
	}
}

func TestRequirements_JSONRoundTrip(t *testing.T) {
	catalog := NewCatalog()
	r := NewRequirements(catalog)
	r.Set(DayFriday, ShiftNight, 4)
	r.Set(DaySunday, ShiftMorningA, 0)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	restored := NewRequirements(catalog)
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("恢复失败: %v", err)
	}

	if restored.Get(DayFriday, ShiftNight) != 4 {
		t.Errorf("覆盖值未恢复, got %d", restored.Get(DayFriday, ShiftNight))
	}
	if restored.Get(DaySunday, ShiftMorningA) != 0 {
		t.Errorf("零值未恢复, got %d", restored.Get(DaySunday, ShiftMorningA))
	}
	if restored.Get(DayMonday, ShiftNoon) != 3 {
		t.Errorf("未覆盖组合应保留默认值, got %d", restored.Get(DayMonday, ShiftNoon))
	}
}
