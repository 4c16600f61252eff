package scheduler

import (
	"encoding/json"
	"testing"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// emptyRequirements 返回全零需求表，测试按需填入
func emptyRequirements(catalog *model.Catalog) *model.Requirements {
	r := model.NewRequirements(catalog)
	for _, day := range catalog.Days() {
		for _, shift := range catalog.Shifts() {
			r.Set(day, shift, 0)
		}
	}
	return r
}

func TestGenerator_PrecheckNoSubmissions(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())
	pool.Get("张伟")

	_, err := g.Generate("2026-09-06", pool, model.NewRequirements(catalog))
	if err == nil {
		t.Fatal("无空闲提交应拒绝生成")
	}
	if !apperrors.Is(err, apperrors.CodeNoSubmissions) {
		t.Errorf("错误码 = %v, expected %v", apperrors.GetCode(err), apperrors.CodeNoSubmissions)
	}
}

func TestGenerator_PrecheckInsufficientAvailability(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())
	pool.Get("张伟").SetAvailability(model.DayMonday, model.ShiftNoon)

	req := emptyRequirements(catalog)
	req.Set(model.DayMonday, model.ShiftNoon, 1)
	req.Set(model.DayTuesday, model.ShiftNoon, 1)

	_, err := g.Generate("2026-09-06", pool, req)
	if err == nil {
		t.Fatal("空闲总量不足应拒绝生成")
	}
	if !apperrors.Is(err, apperrors.CodeInsufficientAvailability) {
		t.Errorf("错误码 = %v, expected %v", apperrors.GetCode(err), apperrors.CodeInsufficientAvailability)
	}
}

func TestGenerator_FillsRequirements(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	a := pool.Get("张伟")
	a.SetAvailability(model.DayMonday, model.ShiftMorningA)
	a.SetAvailability(model.DayMonday, model.ShiftNight)
	a.SetAvailability(model.DayTuesday, model.ShiftNoon)

	b := pool.Get("李娜")
	b.SetAvailability(model.DayMonday, model.ShiftNight)

	req := emptyRequirements(catalog)
	req.Set(model.DayMonday, model.ShiftMorningA, 1)
	req.Set(model.DayMonday, model.ShiftNight, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	// 夜班先行：李娜约束度更高，夜班给李娜；张伟补早班A
	night := result.Schedule.Assignments(model.DayMonday, model.ShiftNight)
	if len(night) != 1 || night[0] != "李娜" {
		t.Errorf("夜班名单 = %v, expected [李娜]", night)
	}
	morning := result.Schedule.Assignments(model.DayMonday, model.ShiftMorningA)
	if len(morning) != 1 || morning[0] != "张伟" {
		t.Errorf("早班A名单 = %v, expected [张伟]", morning)
	}
	if result.Stats.UnfilledPositions != 0 {
		t.Errorf("UnfilledPositions = %d, expected 0", result.Stats.UnfilledPositions)
	}
}

func TestGenerator_OnePerDayLeavesGap(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	e := pool.Get("王芳")
	e.SetAvailability(model.DayMonday, model.ShiftMorningA)
	e.SetAvailability(model.DayMonday, model.ShiftNoon)

	req := emptyRequirements(catalog)
	req.Set(model.DayMonday, model.ShiftMorningA, 1)
	req.Set(model.DayMonday, model.ShiftNoon, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	// 同天只能一个班次：需求人数相同时按目录顺序先处理早班A
	if got := result.Schedule.Assigned(model.DayMonday, model.ShiftMorningA); got != 1 {
		t.Errorf("早班A分配数 = %d, expected 1", got)
	}
	if got := result.Schedule.Assigned(model.DayMonday, model.ShiftNoon); got != 0 {
		t.Errorf("午班分配数 = %d, expected 0", got)
	}
	if result.Stats.UnfilledPositions != 1 {
		t.Errorf("UnfilledPositions = %d, expected 1", result.Stats.UnfilledPositions)
	}
}

func TestGenerator_NightFollowsConstraintRanking(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	// 王芳仅周日可排但四个班次全开：约束度6，空闲槽位4
	constrained := pool.Get("王芳")
	for _, shift := range catalog.Shifts() {
		constrained.SetAvailability(model.DaySunday, shift)
	}

	// 刘洋三天可排夜班：约束度4，空闲槽位3
	flexible := pool.Get("刘洋")
	flexible.SetAvailability(model.DaySunday, model.ShiftNight)
	flexible.SetAvailability(model.DayMonday, model.ShiftNight)
	flexible.SetAvailability(model.DayTuesday, model.ShiftNight)

	req := emptyRequirements(catalog)
	req.Set(model.DaySunday, model.ShiftNight, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	// 夜班按约束度排名取人，不按空闲槽位重排
	names := result.Schedule.Assignments(model.DaySunday, model.ShiftNight)
	if len(names) != 1 || names[0] != "王芳" {
		t.Errorf("周日夜班 = %v, expected [王芳]", names)
	}
}

func TestGenerator_NightFailureConsumesSlot(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	// 张伟周日已有午班：夜班候选过滤不查同日冲突，分配时才失败
	first := pool.Get("张伟")
	first.SetAvailability(model.DaySunday, model.ShiftNoon)
	first.SetAvailability(model.DaySunday, model.ShiftNight)
	if err := first.Assign(model.DaySunday, model.ShiftNoon); err != nil {
		t.Fatalf("预置分配失败: %v", err)
	}

	second := pool.Get("李娜")
	second.SetAvailability(model.DaySunday, model.ShiftNight)

	req := emptyRequirements(catalog)
	req.Set(model.DaySunday, model.ShiftNight, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	// 失败的候选占用名额，不向后顺延补人
	if names := result.Schedule.Assignments(model.DaySunday, model.ShiftNight); len(names) != 0 {
		t.Errorf("周日夜班 = %v, expected 空", names)
	}
	if result.Stats.UnfilledPositions != 1 {
		t.Errorf("UnfilledPositions = %d, expected 1", result.Stats.UnfilledPositions)
	}
}

func TestGenerator_ZeroRequirementsDay(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	e := pool.Get("赵强")
	e.SetAvailability(model.DayMonday, model.ShiftMorningA)
	e.SetAvailability(model.DayTuesday, model.ShiftMorningA)

	req := emptyRequirements(catalog)
	req.Set(model.DayTuesday, model.ShiftMorningA, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	// 周一需求为零：不分配任何人，也不计入缺口
	for _, shift := range catalog.Shifts() {
		if got := result.Schedule.Assigned(model.DayMonday, shift); got != 0 {
			t.Errorf("周一 %s 分配数 = %d, expected 0", shift, got)
		}
		if got := result.Schedule.Shortfall(model.DayMonday, shift); got != 0 {
			t.Errorf("周一 %s 缺口 = %d, expected 0", shift, got)
		}
	}
	if got := result.Schedule.Assigned(model.DayTuesday, model.ShiftMorningA); got != 1 {
		t.Errorf("周二早班A分配数 = %d, expected 1", got)
	}
	if result.Stats.UnfilledPositions != 0 {
		t.Errorf("UnfilledPositions = %d, expected 0", result.Stats.UnfilledPositions)
	}
}

func TestGenerator_PrefersLessLoaded(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	busy := pool.Get("张伟")
	busy.SetAvailability(model.DayMonday, model.ShiftNoon)
	busy.SetAvailability(model.DayTuesday, model.ShiftNoon)
	if err := busy.Assign(model.DaySunday, model.ShiftNoon); err != nil {
		t.Fatalf("预置分配失败: %v", err)
	}

	idle := pool.Get("李娜")
	idle.SetAvailability(model.DayMonday, model.ShiftNoon)
	idle.SetAvailability(model.DayTuesday, model.ShiftNoon)

	req := emptyRequirements(catalog)
	req.Set(model.DayMonday, model.ShiftNoon, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	names := result.Schedule.Assignments(model.DayMonday, model.ShiftNoon)
	if len(names) != 1 || names[0] != "李娜" {
		t.Errorf("应优先选择本周班次更少的员工, got %v", names)
	}
}

func TestGenerator_KeepsExistingAssignments(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	e := pool.Get("刘洋")
	e.SetAvailability(model.DayMonday, model.ShiftNight)
	if err := e.Assign(model.DayMonday, model.ShiftNight); err != nil {
		t.Fatalf("预置分配失败: %v", err)
	}

	other := pool.Get("陈静")
	other.SetAvailability(model.DayMonday, model.ShiftNight)

	req := emptyRequirements(catalog)
	req.Set(model.DayMonday, model.ShiftNight, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	// 已有分配计入需求核算，不再补人
	names := result.Schedule.Assignments(model.DayMonday, model.ShiftNight)
	if len(names) != 1 || names[0] != "刘洋" {
		t.Errorf("名单 = %v, expected [刘洋]", names)
	}
}

func TestGenerator_RespectsNightLimit(t *testing.T) {
	catalog := model.NewCatalog()
	g := NewGenerator(catalog)
	pool := model.NewPool(catalog, model.DefaultRules())

	e := pool.Get("周杰")
	e.SetAvailability(model.DayMonday, model.ShiftNight)
	e.SetAvailability(model.DayThursday, model.ShiftNight)

	req := emptyRequirements(catalog)
	req.Set(model.DayMonday, model.ShiftNight, 1)
	req.Set(model.DayThursday, model.ShiftNight, 1)

	result, err := g.Generate("2026-09-06", pool, req)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	total := result.Schedule.Assigned(model.DayMonday, model.ShiftNight) +
		result.Schedule.Assigned(model.DayThursday, model.ShiftNight)
	if total != 1 {
		t.Errorf("夜班总数 = %d, expected 1（每周夜班上限）", total)
	}
	if result.Stats.UnfilledPositions != 1 {
		t.Errorf("UnfilledPositions = %d, expected 1", result.Stats.UnfilledPositions)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	build := func() (*model.Pool, *model.Requirements, *model.Catalog) {
		catalog := model.NewCatalog()
		pool := model.NewPool(catalog, model.DefaultRules())
		for _, name := range []string{"张伟", "李娜", "王芳", "刘洋", "陈静"} {
			e := pool.Get(name)
			for _, day := range catalog.Days() {
				e.SetAvailability(day, model.ShiftMorningA)
				e.SetAvailability(day, model.ShiftNoon)
				e.SetAvailability(day, model.ShiftNight)
			}
		}
		req := emptyRequirements(catalog)
		for _, day := range catalog.Days() {
			req.Set(day, model.ShiftMorningA, 1)
			req.Set(day, model.ShiftNight, 1)
		}
		return pool, req, catalog
	}

	pool1, req1, catalog1 := build()
	result1, err := NewGenerator(catalog1).Generate("2026-09-06", pool1, req1)
	if err != nil {
		t.Fatalf("第一次生成失败: %v", err)
	}

	pool2, req2, catalog2 := build()
	result2, err := NewGenerator(catalog2).Generate("2026-09-06", pool2, req2)
	if err != nil {
		t.Fatalf("第二次生成失败: %v", err)
	}

	data1, _ := json.Marshal(result1.Schedule)
	data2, _ := json.Marshal(result2.Schedule)
	if string(data1) != string(data2) {
		t.Errorf("相同输入应产出相同排班:\n%s\n%s", data1, data2)
	}
}
