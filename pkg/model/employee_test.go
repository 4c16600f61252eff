package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func newTestEmployee(name string) *Employee {
	return NewEmployee(name, NewCatalog(), DefaultRules())
}

func TestEmployee_ValidateAlreadyAssigned(t *testing.T) {
	e := newTestEmployee("张伟")
	if err := e.Assign(DayMonday, ShiftMorningA); err != nil {
		t.Fatalf("首次分配失败: %v", err)
	}

	v := e.Validate(DayMonday, ShiftNoon)
	if v.Valid {
		t.Fatal("同一天第二次分配应失败")
	}
	if v.Reason != ReasonAlreadyAssigned {
		t.Errorf("原因 = %q, expected %q", v.Reason, ReasonAlreadyAssigned)
	}
}

func TestEmployee_ValidateNightLimit(t *testing.T) {
	e := newTestEmployee("李娜")
	if e.NightCapReached() {
		t.Error("未排夜班时不应到达上限")
	}
	if err := e.Assign(DayMonday, ShiftNight); err != nil {
		t.Fatalf("夜班分配失败: %v", err)
	}
	if !e.NightCapReached() {
		t.Error("一个夜班后应到达上限")
	}

	v := e.Validate(DayThursday, ShiftNight)
	if v.Valid {
		t.Fatal("第二个夜班应失败")
	}
	if v.Reason != ReasonNightLimit {
		t.Errorf("原因 = %q, expected %q", v.Reason, ReasonNightLimit)
	}
}

func TestEmployee_ValidateInsufficientRest(t *testing.T) {
	tests := []struct {
		name  string
		prev  Shift
		next  Shift
		valid bool
	}{
		{"夜班接早班A休息不足", ShiftNight, ShiftMorningA, false},
		{"夜班接早班B休息不足", ShiftNight, ShiftMorningB, false},
		{"夜班接午班刚好8小时", ShiftNight, ShiftNoon, true},
		{"午班接早班A刚好8小时", ShiftNoon, ShiftMorningA, true},
		{"早班A接夜班刚好8小时", ShiftMorningA, ShiftNight, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEmployee("王芳")
			if err := e.Assign(DayMonday, tt.prev); err != nil {
				t.Fatalf("前一天分配失败: %v", err)
			}

			v := e.Validate(DayTuesday, tt.next)
			if v.Valid != tt.valid {
				t.Fatalf("Validate(%s) valid = %v, expected %v (原因: %s)", tt.next, v.Valid, tt.valid, v.Reason)
			}
			if !tt.valid && v.Reason != ReasonInsufficientRest {
				t.Errorf("原因 = %q, expected %q", v.Reason, ReasonInsufficientRest)
			}
		})
	}
}

func TestEmployee_ValidateWeeklyLimit(t *testing.T) {
	e := newTestEmployee("刘洋")
	for _, day := range []Day{DaySunday, DayTuesday, DayThursday} {
		if err := e.Assign(day, ShiftNoon); err != nil {
			t.Fatalf("分配 %s 失败: %v", day, err)
		}
	}

	v := e.Validate(DaySaturday, ShiftNoon)
	if v.Valid {
		t.Fatal("超过每周上限应失败")
	}
	if v.Reason != ReasonWeeklyLimit {
		t.Errorf("原因 = %q, expected %q", v.Reason, ReasonWeeklyLimit)
	}
}

func TestEmployee_ValidateOrderAlreadyAssignedFirst(t *testing.T) {
	// 同时触发同天冲突与夜班上限时，报同天冲突
	e := newTestEmployee("陈静")
	if err := e.Assign(DayMonday, ShiftNight); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	v := e.Validate(DayMonday, ShiftNight)
	if v.Reason != ReasonAlreadyAssigned {
		t.Errorf("原因 = %q, expected %q", v.Reason, ReasonAlreadyAssigned)
	}
}

func TestEmployee_RaisedMaxShiftsAllowsMore(t *testing.T) {
	e := newTestEmployee("赵强")
	e.SetMaxShifts(5)

	days := []Day{DaySunday, DayTuesday, DayThursday, DaySaturday}
	for _, day := range days {
		if err := e.Assign(day, ShiftNoon); err != nil {
			t.Fatalf("分配 %s 失败: %v", day, err)
		}
	}
	if e.WeeklyShiftCount() != 4 {
		t.Errorf("WeeklyShiftCount() = %d, expected 4", e.WeeklyShiftCount())
	}
}

func TestEmployee_AssignReturnsAssignmentError(t *testing.T) {
	e := newTestEmployee("孙敏")
	if err := e.Assign(DayMonday, ShiftMorningA); err != nil {
		t.Fatalf("首次分配失败: %v", err)
	}

	err := e.Assign(DayMonday, ShiftNoon)
	if err == nil {
		t.Fatal("应返回错误")
	}

	var ae *AssignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("错误类型 = %T, expected *AssignmentError", err)
	}
	if ae.Reason != ReasonAlreadyAssigned {
		t.Errorf("Reason = %q, expected %q", ae.Reason, ReasonAlreadyAssigned)
	}
	if ae.Employee != "孙敏" || ae.Day != DayMonday || ae.Shift != ShiftNoon {
		t.Errorf("错误上下文不完整: %+v", ae)
	}
}

func TestEmployee_RemoveAssignment(t *testing.T) {
	e := newTestEmployee("周杰")
	if err := e.Assign(DayMonday, ShiftNight); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	e.RemoveAssignment(DayMonday)

	if e.HasAssignmentOn(DayMonday) {
		t.Error("移除后应无分配")
	}
	if e.NightShiftCount() != 0 {
		t.Errorf("NightShiftCount() = %d, expected 0", e.NightShiftCount())
	}
	// 名额释放后可再次分配夜班
	if v := e.Validate(DayWednesday, ShiftNight); !v.Valid {
		t.Errorf("释放后夜班应可分配, 原因: %s", v.Reason)
	}
}

func TestEmployee_Availability(t *testing.T) {
	e := newTestEmployee("吴磊")
	e.SetAvailability(DayMonday, ShiftNoon)
	e.SetAvailability(DayMonday, ShiftMorningA)
	e.SetAvailability(DayFriday, ShiftNight)

	if !e.IsAvailable(DayMonday, ShiftNoon) {
		t.Error("周一午班应空闲")
	}
	if e.IsAvailable(DayTuesday, ShiftNoon) {
		t.Error("周二午班不应空闲")
	}

	shifts := e.AvailableShifts(DayMonday)
	if len(shifts) != 2 || shifts[0] != ShiftMorningA || shifts[1] != ShiftNoon {
		t.Errorf("AvailableShifts 应按目录顺序返回, got %v", shifts)
	}

	if e.AvailableSlotCount() != 3 {
		t.Errorf("AvailableSlotCount() = %d, expected 3", e.AvailableSlotCount())
	}

	e.RemoveAvailability(DayMonday, ShiftNoon)
	if e.IsAvailable(DayMonday, ShiftNoon) {
		t.Error("移除后不应空闲")
	}
}

func TestEmployee_ConstraintScore(t *testing.T) {
	e := newTestEmployee("郑秀")
	if e.ConstraintScore() != 7 {
		t.Errorf("无空闲时间的约束度 = %d, expected 7", e.ConstraintScore())
	}

	e.SetAvailability(DayMonday, ShiftNoon)
	e.SetAvailability(DayTuesday, ShiftNoon)
	if e.ConstraintScore() != 5 {
		t.Errorf("约束度 = %d, expected 5", e.ConstraintScore())
	}
}

func TestEmployee_JSONRoundTrip(t *testing.T) {
	catalog := NewCatalog()
	rules := DefaultRules()

	e := NewEmployee("张伟", catalog, rules)
	e.SetMaxShifts(4)
	e.SetAvailability(DayMonday, ShiftMorningA)
	e.SetAvailability(DayWednesday, ShiftNight)
	if err := e.Assign(DayMonday, ShiftMorningA); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("解析序列化结果失败: %v", err)
	}
	for _, key := range []string{"name", "maxShifts", "backgroundColor", "textColor", "availableShifts", "assignedShifts"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("序列化结果缺少字段 %s", key)
		}
	}

	restored, err := EmployeeFromJSON(data, catalog, rules)
	if err != nil {
		t.Fatalf("恢复失败: %v", err)
	}
	if restored.Name() != "张伟" || restored.MaxShifts() != 4 {
		t.Errorf("基础字段未恢复: name=%s maxShifts=%d", restored.Name(), restored.MaxShifts())
	}
	if restored.BackgroundColor() != e.BackgroundColor() || restored.TextColor() != e.TextColor() {
		t.Error("颜色应沿用存储值")
	}
	if !restored.IsAvailable(DayWednesday, ShiftNight) {
		t.Error("空闲时间未恢复")
	}
	if shift, ok := restored.AssignedShift(DayMonday); !ok || shift != ShiftMorningA {
		t.Error("分配未恢复")
	}
}

func TestEmployeeColors_Deterministic(t *testing.T) {
	bg1, text1 := employeeColors("张伟")
	bg2, text2 := employeeColors("张伟")
	if bg1 != bg2 || text1 != text2 {
		t.Error("同名应得到相同颜色")
	}
	if text1 != "#FFFFFF" && text1 != "#000000" {
		t.Errorf("文字色 = %q, expected 黑或白", text1)
	}
}
