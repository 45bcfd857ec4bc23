package allocator

import "github.com/noah-isme/campus-timetable-api/internal/models"

const (
	baseScore            = 100.0
	oversizePenaltyRate  = 0.5
	undersizedPenalty    = 1000.0
	departmentMatchBonus = 20.0
)

// ScoreRoom rates how well a room fits a course. Higher is better. Rooms
// smaller than the course lose a flat 1000 points so they sink below every
// adequate room but still rank among themselves; adequate rooms lose half a
// point per seat of slack so the tightest fit wins. Rooms owned by the
// course's department earn a bonus; general-purpose rooms are neutral.
func ScoreRoom(room models.Room, course models.Course) float64 {
	score := baseScore

	slack := room.Capacity - course.StudentCount
	if slack >= 0 {
		score -= oversizePenaltyRate * float64(slack)
	} else {
		score -= undersizedPenalty
	}

	if dept := course.DepartmentKey(); dept != "" && room.DepartmentKey() == dept {
		score += departmentMatchBonus
	}

	return score
}
