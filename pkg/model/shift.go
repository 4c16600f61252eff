// Package model 定义周排班系统的核心数据模型
package model

import (
	"github.com/weekshift/weekshift/pkg/logger"
)

// Shift 班次类型（固定四种，标签用于存储兼容，不可更改）
type Shift string

const (
	ShiftMorningA Shift = "Morning A" // 早班A 7:00-15:00
	ShiftMorningB Shift = "Morning B" // 早班B 9:00-17:00
	ShiftNoon     Shift = "Noon"      // 午班 15:00-23:00
	ShiftNight    Shift = "Night"     // 夜班 23:00-7:00（跨天）
)

// Day 星期（固定七天，周日为一周起点，标签用于存储兼容）
type Day string

const (
	DaySunday    Day = "Sunday"
	DayMonday    Day = "Monday"
	DayTuesday   Day = "Tuesday"
	DayWednesday Day = "Wednesday"
	DayThursday  Day = "Thursday"
	DayFriday    Day = "Friday"
	DaySaturday  Day = "Saturday"
)

// ShiftSpan 班次时间段（整点小时，半开区间，可跨午夜）
type ShiftSpan struct {
	Start int `json:"start"` // 开始小时 0-23
	End   int `json:"end"`   // 结束小时 0-23
}

// Hours 返回班次时长（小时），跨午夜自动折算
func (s ShiftSpan) Hours() int {
	return (s.End - s.Start + 24) % 24
}

// Catalog 班次目录：四种班次的时间定义和星期顺序。
// 作为不可变静态配置注入 Employee 和 Generator，不做全局查找。
type Catalog struct {
	shifts   []Shift
	spans    map[Shift]ShiftSpan
	days     []Day
	dayIndex map[Day]int
}

// NewCatalog 创建标准班次目录
func NewCatalog() *Catalog {
	c := &Catalog{
		shifts: []Shift{ShiftMorningA, ShiftMorningB, ShiftNoon, ShiftNight},
		spans: map[Shift]ShiftSpan{
			ShiftMorningA: {Start: 7, End: 15},
			ShiftMorningB: {Start: 9, End: 17},
			ShiftNoon:     {Start: 15, End: 23},
			ShiftNight:    {Start: 23, End: 7},
		},
		days: []Day{
			DaySunday, DayMonday, DayTuesday, DayWednesday,
			DayThursday, DayFriday, DaySaturday,
		},
		dayIndex: make(map[Day]int),
	}
	for i, d := range c.days {
		c.dayIndex[d] = i
	}
	return c
}

// Shifts 返回目录顺序的班次列表
func (c *Catalog) Shifts() []Shift {
	result := make([]Shift, len(c.shifts))
	copy(result, c.shifts)
	return result
}

// Days 返回周顺序的星期列表
func (c *Catalog) Days() []Day {
	result := make([]Day, len(c.days))
	copy(result, c.days)
	return result
}

// Span 返回班次的时间段
func (c *Catalog) Span(s Shift) (ShiftSpan, bool) {
	span, ok := c.spans[s]
	return span, ok
}

// ValidShift 检查班次标签是否存在
func (c *Catalog) ValidShift(s Shift) bool {
	_, ok := c.spans[s]
	return ok
}

// ValidDay 检查星期标签是否存在
func (c *Catalog) ValidDay(d Day) bool {
	_, ok := c.dayIndex[d]
	return ok
}

// DayIndex 返回星期在周内的位置，未知返回 -1
func (c *Catalog) DayIndex(d Day) int {
	if i, ok := c.dayIndex[d]; ok {
		return i
	}
	return -1
}

// PreviousDay 返回前一天，按周取模回绕（周日的前一天是周六）
func (c *Catalog) PreviousDay(d Day) Day {
	i := c.DayIndex(d)
	if i < 0 {
		return d
	}
	return c.days[(i-1+7)%7]
}

// IsNight 检查是否为夜班
func (c *Catalog) IsNight(s Shift) bool {
	return s == ShiftNight
}

// maxRestHours 班次解析失败时的兜底休息时长
const maxRestHours = 24

// RestHours 计算相邻两天班次之间的休息时长（小时）：
// 前一班结束到后一班开始的间隔，前一班跨午夜或结束晚于后一班名义开始时
// 将开始时间加 24 小时折算。
// 班次标签无法解析时返回 24（放行而非阻塞，避免数据问题卡死校验；
// 该兜底会掩盖数据完整性错误，属于已知取舍）。
func (c *Catalog) RestHours(prev, next Shift) int {
	prevSpan, prevOK := c.spans[prev]
	nextSpan, nextOK := c.spans[next]
	if !prevOK || !nextOK {
		logger.Warn().
			Str("prev", string(prev)).
			Str("next", string(next)).
			Msg("班次标签无法解析，按最大休息时长放行")
		return maxRestHours
	}

	endHour := prevSpan.End
	startHour := nextSpan.Start
	if endHour > startHour {
		startHour += 24
	}
	return startHour - endHour
}
