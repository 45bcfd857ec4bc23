package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

func TestScoreRoomPrefersTightFit(t *testing.T) {
	course := models.Course{StudentCount: 30}
	snug := models.Room{Capacity: 32}
	roomy := models.Room{Capacity: 120}

	assert.Greater(t, ScoreRoom(snug, course), ScoreRoom(roomy, course))
}

func TestScoreRoomExactFit(t *testing.T) {
	course := models.Course{StudentCount: 30}
	exact := models.Room{Capacity: 30}
	assert.InDelta(t, 100.0, ScoreRoom(exact, course), 1e-9)
}

func TestScoreRoomUndersizedSinksBelowAdequate(t *testing.T) {
	course := models.Course{StudentCount: 50}
	small := models.Room{Capacity: 20}
	huge := models.Room{Capacity: 500}

	assert.Less(t, ScoreRoom(small, course), ScoreRoom(huge, course))
	assert.InDelta(t, -900.0, ScoreRoom(small, course), 1e-9)
}

func TestScoreRoomDepartmentBonus(t *testing.T) {
	course := models.Course{StudentCount: 30, DepartmentID: strPtr("dept-cs")}
	owned := models.Room{Capacity: 40, DepartmentID: strPtr("dept-cs")}
	general := models.Room{Capacity: 40}
	foreign := models.Room{Capacity: 40, DepartmentID: strPtr("dept-math")}

	assert.InDelta(t, 20.0, ScoreRoom(owned, course)-ScoreRoom(general, course), 1e-9)
	assert.InDelta(t, ScoreRoom(general, course), ScoreRoom(foreign, course), 1e-9)
}

func TestScoreRoomNoBonusForCourseWithoutDepartment(t *testing.T) {
	course := models.Course{StudentCount: 30}
	general := models.Room{Capacity: 40}
	owned := models.Room{Capacity: 40, DepartmentID: strPtr("dept-cs")}
	assert.InDelta(t, ScoreRoom(general, course), ScoreRoom(owned, course), 1e-9)
}

func TestScoreRoomBonusCanOutweighSlack(t *testing.T) {
	// A department-owned room with up to 40 extra seats still beats a
	// general room with perfect fit: 20 bonus vs 0.5/seat slack.
	course := models.Course{StudentCount: 20, DepartmentID: strPtr("dept-cs")}
	owned := models.Room{Capacity: 50, DepartmentID: strPtr("dept-cs")}
	exact := models.Room{Capacity: 20}

	assert.Greater(t, ScoreRoom(owned, course), ScoreRoom(exact, course))
}
