// Package scheduler 实现周排班贪心生成器
package scheduler

import (
	"sort"
	"time"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/logger"
	"github.com/weekshift/weekshift/pkg/model"
)

// Generator 贪心排班生成器。
// 不做回溯：按约束度处理夜班与高需求班次，单次遍历填充全周。
type Generator struct {
	catalog *model.Catalog
	log     *logger.SchedulerLogger
}

// Result 一次生成的产出
type Result struct {
	Schedule *model.Schedule
	Stats    model.ScheduleStats
	Duration time.Duration
}

// NewGenerator 创建生成器
func NewGenerator(catalog *model.Catalog) *Generator {
	return &Generator{
		catalog: catalog,
		log:     logger.NewSchedulerLogger(),
	}
}

// Precheck 生成前检查：池中完全没有空闲提交、或空闲总量不足以
// 覆盖需求总量时直接拒绝生成。
func (g *Generator) Precheck(pool *model.Pool, requirements *model.Requirements) error {
	totalAvailable := 0
	for _, e := range pool.Employees() {
		totalAvailable += e.AvailableSlotCount()
	}
	if totalAvailable == 0 {
		return apperrors.ErrNoSubmissions
	}
	if required := requirements.Total(); totalAvailable < required {
		return apperrors.InsufficientAvailability(totalAvailable, required)
	}
	return nil
}

// Generate 生成一周排班。
// 池中已有的分配原样保留并计入缺口核算；结果在相同输入下可复现。
func (g *Generator) Generate(week string, pool *model.Pool, requirements *model.Requirements) (*Result, error) {
	start := time.Now()
	if err := g.Precheck(pool, requirements); err != nil {
		return nil, err
	}

	g.log.StartGenerate(week, pool.Len())

	schedule := model.NewSchedule(week, g.catalog, requirements)
	for _, e := range pool.Employees() {
		schedule.Adopt(e)
	}

	ranked := g.rankByConstraint(pool.Employees())

	// 夜班优先：全周夜班先行分配，避免低约束员工提前占满名额
	for _, day := range g.catalog.Days() {
		g.fillNightSlot(schedule, ranked, day)
	}

	for _, day := range g.catalog.Days() {
		for _, shift := range g.dayShiftOrder(schedule, day) {
			g.fillSlot(schedule, ranked, day, shift)
		}
	}

	result := &Result{
		Schedule: schedule,
		Stats:    schedule.Stats(),
		Duration: time.Since(start),
	}
	g.log.GenerateComplete(week, result.Stats.TotalAssignedShifts, result.Stats.UnfilledPositions, result.Duration)
	return result, nil
}

// rankByConstraint 按约束度降序排列员工：可选余地越少越先处理。
// 同分保持池内加入顺序。
func (g *Generator) rankByConstraint(employees []*model.Employee) []*model.Employee {
	ranked := make([]*model.Employee, len(employees))
	copy(ranked, employees)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ConstraintScore() > ranked[j].ConstraintScore()
	})
	return ranked
}

// dayShiftOrder 返回某天除夜班外的班次处理顺序：需求人数降序，
// 同数保持目录顺序。
func (g *Generator) dayShiftOrder(schedule *model.Schedule, day model.Day) []model.Shift {
	var shifts []model.Shift
	for _, shift := range g.catalog.Shifts() {
		if g.catalog.IsNight(shift) {
			continue
		}
		shifts = append(shifts, shift)
	}
	sort.SliceStable(shifts, func(i, j int) bool {
		return schedule.Required(day, shifts[i]) > schedule.Required(day, shifts[j])
	})
	return shifts
}

// fillNightSlot 为某天夜班补齐缺口。
// 候选人按约束度排名顺序取用，不按负载重排：只要求夜班空闲且
// 未到周夜班上限。取排名靠前的 needed 名逐个分配，分配失败记
// 日志跳过，名额不回补。
func (g *Generator) fillNightSlot(schedule *model.Schedule, ranked []*model.Employee, day model.Day) {
	needed := schedule.Shortfall(day, model.ShiftNight)
	if needed == 0 {
		return
	}

	var candidates []*model.Employee
	for _, e := range ranked {
		if !e.IsAvailable(day, model.ShiftNight) {
			continue
		}
		if e.NightCapReached() {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) > needed {
		candidates = candidates[:needed]
	}

	for _, e := range candidates {
		if err := schedule.Add(e, day, model.ShiftNight); err != nil {
			g.log.CandidateSkipped(e.Name(), string(day), string(model.ShiftNight), err.Error())
		}
	}
}

// fillSlot 为某天某班次补齐缺口。
// 候选人要求该槽位空闲且通过全部校验，按本周已分配数升序取用，
// 同数时空闲总量少者优先。
func (g *Generator) fillSlot(schedule *model.Schedule, ranked []*model.Employee, day model.Day, shift model.Shift) {
	needed := schedule.Shortfall(day, shift)
	if needed == 0 {
		return
	}

	var candidates []*model.Employee
	for _, e := range ranked {
		if !e.IsAvailable(day, shift) {
			continue
		}
		if e.HasAssignmentOn(day) {
			continue
		}
		if v := e.Validate(day, shift); !v.Valid {
			continue
		}
		candidates = append(candidates, e)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i].WeeklyShiftCount(), candidates[j].WeeklyShiftCount()
		if ci != cj {
			return ci < cj
		}
		return candidates[i].AvailableSlotCount() < candidates[j].AvailableSlotCount()
	})

	for _, e := range candidates {
		if needed == 0 {
			return
		}
		if err := schedule.Add(e, day, shift); err != nil {
			// 前序分配可能让候选资格失效，跳过继续
			g.log.CandidateSkipped(e.Name(), string(day), string(shift), err.Error())
			continue
		}
		needed--
	}
}
