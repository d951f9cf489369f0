package service

import (
	"testing"
	"time"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

func tierPtr(t model.Tier) *model.Tier {
	return &t
}

func TestCheckSimple(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		threshold int
		current   *model.Tier
		unlocked  bool
	}{
		{"below threshold", 0, 1, nil, false},
		{"at threshold", 1, 1, nil, true},
		{"above threshold", 5, 1, nil, true},
		{"already unlocked", 5, 1, tierPtr(model.TierBronze), false},
		{"zero threshold never fires", 5, 0, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checkSimple(tt.value, tt.threshold, tt.current)
			if res.Unlocked != tt.unlocked {
				t.Errorf("unlocked = %v, want %v", res.Unlocked, tt.unlocked)
			}
			if res.Value != tt.value {
				t.Errorf("value = %d, want %d", res.Value, tt.value)
			}
		})
	}
}

func TestCheckTiered(t *testing.T) {
	thresholds := map[model.Tier]int{
		model.TierBronze:  1,
		model.TierSilver:  5,
		model.TierGold:    10,
		model.TierDiamond: 25,
	}
	tests := []struct {
		name    string
		value   int
		current *model.Tier
		want    *model.Tier
	}{
		{"nothing earned", 0, nil, nil},
		{"first tier", 1, nil, tierPtr(model.TierBronze)},
		{"skips straight to gold", 12, nil, tierPtr(model.TierGold)},
		{"top tier", 30, nil, tierPtr(model.TierDiamond)},
		{"no change below next tier", 4, tierPtr(model.TierBronze), nil},
		{"upgrade from bronze", 10, tierPtr(model.TierBronze), tierPtr(model.TierGold)},
		{"already at top", 100, tierPtr(model.TierDiamond), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checkTiered(tt.value, thresholds, tt.current, false)
			if (res.Tier == nil) != (tt.want == nil) {
				t.Fatalf("tier = %v, want %v", res.Tier, tt.want)
			}
			if tt.want != nil && *res.Tier != *tt.want {
				t.Errorf("tier = %s, want %s", *res.Tier, *tt.want)
			}
		})
	}
}

func TestCheckTieredReverse(t *testing.T) {
	thresholds := map[model.Tier]int{
		model.TierBronze:  20,
		model.TierSilver:  15,
		model.TierGold:    10,
		model.TierDiamond: 5,
	}
	tests := []struct {
		name    string
		value   int
		current *model.Tier
		want    *model.Tier
	}{
		{"zero value never qualifies", 0, nil, nil},
		{"slow attempt", 25, nil, nil},
		{"bronze speed", 18, nil, tierPtr(model.TierBronze)},
		{"diamond speed", 4, nil, tierPtr(model.TierDiamond)},
		{"no downgrade", 18, tierPtr(model.TierGold), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checkTiered(tt.value, thresholds, tt.current, true)
			if (res.Tier == nil) != (tt.want == nil) {
				t.Fatalf("tier = %v, want %v", res.Tier, tt.want)
			}
			if tt.want != nil && *res.Tier != *tt.want {
				t.Errorf("tier = %s, want %s", *res.Tier, *tt.want)
			}
		})
	}
}

func TestTiersBetween(t *testing.T) {
	got := tiersBetween(nil, tierPtr(model.TierGold))
	want := []model.Tier{model.TierBronze, model.TierSilver, model.TierGold}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tier %d = %s, want %s", i, got[i], want[i])
		}
	}

	got = tiersBetween(tierPtr(model.TierSilver), tierPtr(model.TierDiamond))
	want = []model.Tier{model.TierGold, model.TierDiamond}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if tiersBetween(tierPtr(model.TierGold), nil) != nil {
		t.Error("expected nil for no earned tier")
	}
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestMaxConsecutiveDays(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single day", []string{"2026-03-01"}, 1},
		{"three day run", []string{"2026-03-01", "2026-03-02", "2026-03-03"}, 3},
		{"broken run", []string{"2026-03-01", "2026-03-02", "2026-03-05", "2026-03-06", "2026-03-07"}, 3},
		{"duplicates ignored", []string{"2026-03-01", "2026-03-01", "2026-03-02"}, 2},
		{"unsorted input", []string{"2026-03-03", "2026-03-01", "2026-03-02"}, 3},
		{"month boundary", []string{"2026-02-28", "2026-03-01"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dates []time.Time
			for _, s := range tt.dates {
				dates = append(dates, day(s))
			}
			if got := maxConsecutiveDays(dates); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaxWeeklyActiveDays(t *testing.T) {
	// 2026-03-02 is a Monday.
	dates := []time.Time{
		day("2026-03-02"), day("2026-03-03"), day("2026-03-04"),
		day("2026-03-09"),
	}
	if got := maxWeeklyActiveDays(dates); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestMaxMonthlyActiveDays(t *testing.T) {
	dates := []time.Time{
		day("2026-03-01"), day("2026-03-10"), day("2026-03-10"), day("2026-03-20"),
		day("2026-04-01"),
	}
	if got := maxMonthlyActiveDays(dates); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}
