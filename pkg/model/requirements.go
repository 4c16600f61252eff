package model

import "encoding/json"

// 默认每班次人数需求
var defaultRequired = map[Shift]int{
	ShiftMorningA: 3,
	ShiftMorningB: 2,
	ShiftNoon:     3,
	ShiftNight:    2,
}

// Requirements 每天每班次的人数需求表，默认全周统一
type Requirements struct {
	catalog  *Catalog
	required map[Day]map[Shift]int
}

// NewRequirements 创建需求表并填入默认值
func NewRequirements(catalog *Catalog) *Requirements {
	r := &Requirements{
		catalog:  catalog,
		required: make(map[Day]map[Shift]int),
	}
	for _, day := range catalog.Days() {
		r.required[day] = make(map[Shift]int)
		for _, shift := range catalog.Shifts() {
			r.required[day][shift] = defaultRequired[shift]
		}
	}
	return r
}

// Get 返回某天某班次的需求人数，未知组合返回 0
func (r *Requirements) Get(day Day, shift Shift) int {
	return r.required[day][shift]
}

// Set 设置某天某班次的需求人数，负数按 0 处理
func (r *Requirements) Set(day Day, shift Shift, count int) {
	if !r.catalog.ValidDay(day) || !r.catalog.ValidShift(shift) {
		return
	}
	if count < 0 {
		count = 0
	}
	r.required[day][shift] = count
}

// DayRequirements 返回某天全部班次的需求（目录顺序的副本）
func (r *Requirements) DayRequirements(day Day) map[Shift]int {
	result := make(map[Shift]int)
	for _, shift := range r.catalog.Shifts() {
		result[shift] = r.required[day][shift]
	}
	return result
}

// Replace 整体替换需求表，忽略未知的天或班次
func (r *Requirements) Replace(required map[Day]map[Shift]int) {
	for day, shifts := range required {
		for shift, count := range shifts {
			r.Set(day, shift, count)
		}
	}
}

// Total 返回整周需求总数
func (r *Requirements) Total() int {
	total := 0
	for _, day := range r.catalog.Days() {
		total += r.DayTotal(day)
	}
	return total
}

// DayTotal 返回某天需求总数
func (r *Requirements) DayTotal(day Day) int {
	total := 0
	for _, count := range r.required[day] {
		total += count
	}
	return total
}

// ShiftTotal 返回某班次整周需求总数
func (r *Requirements) ShiftTotal(shift Shift) int {
	total := 0
	for _, day := range r.catalog.Days() {
		total += r.required[day][shift]
	}
	return total
}

// MarshalJSON 实现需求表序列化
func (r *Requirements) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.required)
}

// UnmarshalJSON 从序列化数据恢复需求表，未覆盖的组合保留默认值
func (r *Requirements) UnmarshalJSON(data []byte) error {
	var required map[Day]map[Shift]int
	if err := json.Unmarshal(data, &required); err != nil {
		return err
	}
	r.Replace(required)
	return nil
}
