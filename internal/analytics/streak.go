package analytics

import "time"

// consistencyWeeks is the length of the rolling weekly histogram, and the
// lookback used for the at-risk check.
const consistencyWeeks = 12

// WeekActivity is one bar of the weekly consistency histogram.
type WeekActivity struct {
	WeekStart  time.Time `json:"week_start"`
	ActiveDays int       `json:"active_days"`
}

// StreakData holds the consecutive-week training streaks and the rolling
// consistency histogram.
type StreakData struct {
	CurrentStreak     int            `json:"current_streak"`
	BestStreak        int            `json:"best_streak"`
	IsAtRisk          bool           `json:"is_at_risk"`
	WeeklyConsistency []WeekActivity `json:"weekly_consistency"`
}

// ComputeStreak derives streaks from the set of workout dates. Weeks start on
// Monday in the given location; a week is active iff at least one workout
// falls inside it.
//
// The current streak requires the current week itself to be active: a week
// with no workout yet yields a current streak of zero even when prior weeks
// were active (the at-risk flag covers that situation).
func ComputeStreak(workoutDates []time.Time, now time.Time, loc *time.Location) StreakData {
	activeDays := map[time.Time]map[time.Time]bool{}
	for _, d := range workoutDates {
		week := weekStart(d, loc)
		if activeDays[week] == nil {
			activeDays[week] = map[time.Time]bool{}
		}
		activeDays[week][dayStart(d, loc)] = true
	}

	data := StreakData{}
	thisWeek := weekStart(now, loc)

	// Current streak: walk backward while weeks stay active.
	for w := thisWeek; activeDays[w] != nil; w = w.AddDate(0, 0, -7) {
		data.CurrentStreak++
	}

	// Best streak: longest run of calendar-adjacent active weeks anywhere.
	for w := range activeDays {
		if activeDays[w.AddDate(0, 0, -7)] != nil {
			continue // not the start of a run
		}
		run := 0
		for cur := w; activeDays[cur] != nil; cur = cur.AddDate(0, 0, 7) {
			run++
		}
		if run > data.BestStreak {
			data.BestStreak = run
		}
	}

	// Last 12 weeks, oldest → newest, zero-filled.
	for i := consistencyWeeks - 1; i >= 0; i-- {
		w := thisWeek.AddDate(0, 0, -7*i)
		data.WeeklyConsistency = append(data.WeeklyConsistency, WeekActivity{
			WeekStart:  w,
			ActiveDays: len(activeDays[w]),
		})
	}

	if activeDays[thisWeek] == nil {
		for _, wa := range data.WeeklyConsistency {
			if wa.ActiveDays > 0 {
				data.IsAtRisk = true
				break
			}
		}
	}

	return data
}

// weekStart returns midnight of the Monday beginning t's week, in loc.
func weekStart(t time.Time, loc *time.Location) time.Time {
	day := dayStart(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// dayStart returns midnight of t's calendar day, in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
