package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Bucket selects the granularity of a volume trend.
type Bucket string

const (
	BucketDaily  Bucket = "daily"
	BucketWeekly Bucket = "weekly"
)

// VolumePoint is one bucket of a volume trend.
type VolumePoint struct {
	BucketStart time.Time `json:"bucket_start"`
	VolumeKg    float64   `json:"volume_kg"`
}

// VolumeTrend buckets completed sets' kg-volume by calendar day or week.
// For a bounded window [start, end) every bucket in range is emitted,
// zero-filled; with zero start/end ("all time") only non-empty buckets
// come back, sorted ascending.
func VolumeTrend(sets []models.WorkoutSet, bucket Bucket, start, end time.Time, loc *time.Location) []VolumePoint {
	bucketOf := func(t time.Time) time.Time {
		if bucket == BucketWeekly {
			return weekStart(t, loc)
		}
		return dayStart(t, loc)
	}

	volumes := map[time.Time]float64{}
	for _, set := range sets {
		if !set.IsCompleted || set.Weight == nil || set.Reps == nil {
			continue
		}
		volumes[bucketOf(set.Date)] += VolumeKg(*set.Weight, *set.Reps, set.Unit)
	}

	var points []VolumePoint
	if start.IsZero() && end.IsZero() {
		for b, v := range volumes {
			points = append(points, VolumePoint{BucketStart: b, VolumeKg: v})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].BucketStart.Before(points[j].BucketStart) })
		return points
	}

	step := func(t time.Time) time.Time {
		if bucket == BucketWeekly {
			return t.AddDate(0, 0, 7)
		}
		return t.AddDate(0, 0, 1)
	}
	for b := bucketOf(start); b.Before(end); b = step(b) {
		points = append(points, VolumePoint{BucketStart: b, VolumeKg: volumes[b]})
	}
	return points
}

// maxBreakdownCategories is how many categories are listed verbatim before
// the tail collapses into "Other".
const maxBreakdownCategories = 6

// OtherCategory labels the merged tail of the category breakdown.
const OtherCategory = "Other"

// CategoryVolume is one slice of the category breakdown.
type CategoryVolume struct {
	Category string  `json:"category"`
	VolumeKg float64 `json:"volume_kg"`
	Percent  float64 `json:"percent"`
}

// CategoryBreakdown sums completed sets' kg-volume per primary category,
// sorts descending, keeps the top categories verbatim, and merges the rest
// into a single additive "Other" bucket.
func CategoryBreakdown(sets []models.WorkoutSet, categoryOf map[uuid.UUID]string) []CategoryVolume {
	volumes := map[string]float64{}
	var order []string
	total := 0.0
	for _, set := range sets {
		if !set.IsCompleted || set.Weight == nil || set.Reps == nil {
			continue
		}
		cat := categoryOf[set.ExerciseID]
		if cat == "" {
			cat = OtherCategory
		}
		if _, seen := volumes[cat]; !seen {
			order = append(order, cat)
		}
		v := VolumeKg(*set.Weight, *set.Reps, set.Unit)
		volumes[cat] += v
		total += v
	}
	if total == 0 {
		return nil
	}

	// Deterministic order: volume descending, then name.
	sort.SliceStable(order, func(i, j int) bool {
		if volumes[order[i]] != volumes[order[j]] {
			return volumes[order[i]] > volumes[order[j]]
		}
		return order[i] < order[j]
	})

	var result []CategoryVolume
	for i, cat := range order {
		if i < maxBreakdownCategories {
			result = append(result, CategoryVolume{
				Category: cat,
				VolumeKg: volumes[cat],
				Percent:  volumes[cat] / total * 100,
			})
			continue
		}
		if len(result) == maxBreakdownCategories {
			result = append(result, CategoryVolume{Category: OtherCategory})
		}
		other := &result[maxBreakdownCategories]
		other.VolumeKg += volumes[cat]
		other.Percent = other.VolumeKg / total * 100
	}
	return result
}

// PeriodComparison compares one aggregate across two equal-length windows.
// PercentChange is nil when the previous window had no data: "no comparison
// available" is a real signal, not a zero.
type PeriodComparison struct {
	Current       float64  `json:"current"`
	Previous      float64  `json:"previous"`
	PercentChange *float64 `json:"percent_change,omitempty"`
}

// ComparePeriods computes the change between a current and previous value,
// guarding the zero-denominator case.
func ComparePeriods(current, previous float64) PeriodComparison {
	pc := PeriodComparison{Current: current, Previous: previous}
	if previous != 0 {
		change := (current - previous) / previous * 100
		pc.PercentChange = &change
	}
	return pc
}
