package service

import (
	"fmt"
	"time"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// CheckResult is the outcome of evaluating one achievement for a user.
type CheckResult struct {
	Value    int
	Tier     *model.Tier
	Unlocked bool
}

func tierIndex(t *model.Tier) int {
	if t == nil {
		return -1
	}
	for i, tier := range model.Tiers {
		if tier == *t {
			return i
		}
	}
	return -1
}

// checkSimple evaluates an untiered achievement: unlocked once the value
// reaches the threshold, never more than once.
func checkSimple(value, threshold int, current *model.Tier) CheckResult {
	res := CheckResult{Value: value}
	if current == nil && threshold > 0 && value >= threshold {
		res.Unlocked = true
	}
	return res
}

// checkTiered evaluates a tiered achievement and reports the highest tier
// the value now earns beyond the currently held one. With reverse set,
// lower values are better and non-positive values never qualify.
func checkTiered(value int, thresholds map[model.Tier]int, current *model.Tier, reverse bool) CheckResult {
	res := CheckResult{Value: value}
	if reverse && value <= 0 {
		return res
	}
	held := tierIndex(current)
	for i, tier := range model.Tiers {
		if i <= held {
			continue
		}
		threshold, ok := thresholds[tier]
		if !ok {
			continue
		}
		qualifies := value >= threshold
		if reverse {
			qualifies = value <= threshold
		}
		if qualifies {
			t := tier
			res.Tier = &t
			res.Unlocked = true
		}
	}
	return res
}

// tiersBetween lists the tiers above the held one up to and including the
// newly earned one, in ascending order.
func tiersBetween(current, earned *model.Tier) []model.Tier {
	if earned == nil {
		return nil
	}
	held := tierIndex(current)
	top := tierIndex(earned)
	var tiers []model.Tier
	for i, tier := range model.Tiers {
		if i > held && i <= top {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}

// maxConsecutiveDays returns the longest run of back-to-back calendar days
// in dates. Duplicates within a day are ignored; order does not matter.
func maxConsecutiveDays(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	days := make(map[int64]bool, len(dates))
	for _, d := range dates {
		y, m, day := d.Date()
		days[time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Unix()] = true
	}
	best := 0
	for day := range days {
		if days[day-86400] {
			continue
		}
		length := 1
		for next := day + 86400; days[next]; next += 86400 {
			length++
		}
		if length > best {
			best = length
		}
	}
	return best
}

// maxWeeklyActiveDays returns the most distinct weekdays seen within any
// single ISO week.
func maxWeeklyActiveDays(dates []time.Time) int {
	weeks := make(map[string]map[time.Weekday]bool)
	for _, d := range dates {
		year, week := d.ISOWeek()
		key := weekKey(year, week)
		if weeks[key] == nil {
			weeks[key] = make(map[time.Weekday]bool)
		}
		weeks[key][d.Weekday()] = true
	}
	best := 0
	for _, days := range weeks {
		if len(days) > best {
			best = len(days)
		}
	}
	return best
}

// maxMonthlyActiveDays returns the most distinct calendar days seen within
// any single month.
func maxMonthlyActiveDays(dates []time.Time) int {
	months := make(map[string]map[int]bool)
	for _, d := range dates {
		key := d.Format("2006-01")
		if months[key] == nil {
			months[key] = make(map[int]bool)
		}
		months[key][d.Day()] = true
	}
	best := 0
	for _, days := range months {
		if len(days) > best {
			best = len(days)
		}
	}
	return best
}

func weekKey(year, week int) string {
	return fmt.Sprintf("%04d-%02d", year, week)
}
