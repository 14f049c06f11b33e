package domain

// Rank progression is a stateless numeric routine: completed workouts earn
// points, point totals map to titles. It is independent of the calendar
// engine and recomputed from the Schedule Store by the nightly job.

const PointsPerCompletedWorkout = 10

const (
	RankBeginner     = "Beginner"
	RankIntermediate = "Intermediate"
	RankAdvanced     = "Advanced"
	RankElite        = "Elite"
)

// RankPoints converts a completed-workout count into progression points.
func RankPoints(completedWorkouts int64) int {
	if completedWorkouts < 0 {
		return 0
	}
	return int(completedWorkouts) * PointsPerCompletedWorkout
}

// RankTitleFor maps a point total to a rank title.
func RankTitleFor(points int) string {
	switch {
	case points >= 1500:
		return RankElite
	case points >= 500:
		return RankAdvanced
	case points >= 100:
		return RankIntermediate
	default:
		return RankBeginner
	}
}
