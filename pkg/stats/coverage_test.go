package stats

import (
	"testing"

	"github.com/weekshift/weekshift/pkg/model"
)

func TestCoverageAnalyzer_Analyze(t *testing.T) {
	catalog := model.NewCatalog()
	pool := model.NewPool(catalog, model.DefaultRules())

	req := model.NewRequirements(catalog)
	for _, day := range catalog.Days() {
		for _, shift := range catalog.Shifts() {
			req.Set(day, shift, 0)
		}
	}
	req.Set(model.DayMonday, model.ShiftMorningA, 2)
	req.Set(model.DayMonday, model.ShiftNight, 1)

	schedule := model.NewSchedule("2026-09-06", catalog, req)
	if err := schedule.Add(pool.Get("张伟"), model.DayMonday, model.ShiftMorningA); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	analyzer := NewCoverageAnalyzer(catalog)
	metrics := analyzer.Analyze(schedule)

	if metrics.TotalRequired != 3 {
		t.Errorf("TotalRequired = %d, expected 3", metrics.TotalRequired)
	}
	if metrics.TotalAssigned != 1 {
		t.Errorf("TotalAssigned = %d, expected 1", metrics.TotalAssigned)
	}

	monday := metrics.DailyCoverage[model.DayMonday]
	if monday.Required != 3 || monday.Assigned != 1 {
		t.Errorf("周一覆盖 = %d/%d, expected 1/3", monday.Assigned, monday.Required)
	}
	if monday.TotalHours != 8 {
		t.Errorf("周一工时 = %d, expected 8", monday.TotalHours)
	}

	// 周二无需求，按全覆盖处理
	tuesday := metrics.DailyCoverage[model.DayTuesday]
	if tuesday.CoverageRate != 100 {
		t.Errorf("无需求天覆盖率 = %v, expected 100", tuesday.CoverageRate)
	}

	if len(metrics.UnfilledSlots) != 2 {
		t.Fatalf("未填满槽位数 = %d, expected 2", len(metrics.UnfilledSlots))
	}
	first := metrics.UnfilledSlots[0]
	if first.Shift != model.ShiftMorningA || first.Shortage != 1 {
		t.Errorf("首个缺口 = %+v", first)
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name     string
		assigned int
		required int
		expected float64
	}{
		{"全覆盖", 3, 3, 100},
		{"半覆盖", 1, 2, 50},
		{"零需求", 0, 0, 100},
		{"超配封顶", 5, 3, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rate(tt.assigned, tt.required); got != tt.expected {
				t.Errorf("rate(%d, %d) = %v, expected %v", tt.assigned, tt.required, got, tt.expected)
			}
		})
	}
}
