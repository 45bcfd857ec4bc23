package allocator

import (
	"errors"
	"fmt"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// ErrNoRoomAvailable means auto-pick found no free room of sufficient
// capacity for the requested interval.
var ErrNoRoomAvailable = errors.New("no suitable room available for the requested slot")

// CapacityWarning flags a deliberately chosen room that is smaller than the
// course. The placement still goes through; operators sometimes overbook on
// purpose.
type CapacityWarning struct {
	RoomID       string `json:"room_id"`
	RoomName     string `json:"room_name"`
	Capacity     int    `json:"capacity"`
	StudentCount int    `json:"student_count"`
	Message      string `json:"message"`
}

// PlacementRequest is a manual placement to validate. RoomID may be empty,
// in which case the best free room is picked automatically. ExcludeID skips
// an existing entry when rescheduling it in place.
type PlacementRequest struct {
	Course    models.Course
	RoomID    string
	Day       string
	StartTime string
	EndTime   string
	ExcludeID string
}

// PlacementDecision is the validated outcome: the room to use and an
// optional capacity warning. Quota is not enforced here; manual placements
// may exceed a course's weekly hours.
type PlacementDecision struct {
	Room    models.Room
	Warning *CapacityWarning
}

// ValidatePlacement checks a manual placement against the dataset. The
// instructor check runs first so a double-booked instructor is reported even
// when the room choice is also bad. Conflicts come back as
// *models.PlacementConflictError.
func (d *Dataset) ValidatePlacement(req PlacementRequest) (PlacementDecision, error) {
	day := NormalizeDay(req.Day)
	if !IsValidDay(day) {
		return PlacementDecision{}, fmt.Errorf("invalid day %q", req.Day)
	}
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return PlacementDecision{}, err
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return PlacementDecision{}, err
	}
	if end <= start {
		return PlacementDecision{}, fmt.Errorf("end time %s must be after start time %s", req.EndTime, req.StartTime)
	}

	if conflict, busy := d.FindInstructorConflict(req.Course.Instructor, day, start, end, req.ExcludeID); busy {
		return PlacementDecision{}, &models.PlacementConflictError{
			Type:     models.ConflictDimensionInstructor,
			Message:  fmt.Sprintf("instructor %s already teaches at this time", req.Course.Instructor),
			Conflict: conflict,
		}
	}

	if req.RoomID == "" {
		best, ok := d.BestRoom(req.Course, day, start, end, req.ExcludeID)
		if !ok {
			return PlacementDecision{}, ErrNoRoomAvailable
		}
		return PlacementDecision{Room: best.Room}, nil
	}

	room := d.RoomByID(req.RoomID)
	if room == nil {
		return PlacementDecision{}, fmt.Errorf("room %s not found", req.RoomID)
	}

	if conflict, busy := d.FindRoomConflict(room.ID, day, start, end, req.ExcludeID); busy {
		return PlacementDecision{}, &models.PlacementConflictError{
			Type:     models.ConflictDimensionRoom,
			Message:  fmt.Sprintf("room %s is already occupied at this time", room.Name),
			Conflict: conflict,
		}
	}

	decision := PlacementDecision{Room: *room}
	if room.Capacity < req.Course.StudentCount {
		decision.Warning = &CapacityWarning{
			RoomID:       room.ID,
			RoomName:     room.Name,
			Capacity:     room.Capacity,
			StudentCount: req.Course.StudentCount,
			Message: fmt.Sprintf("room %s seats %d but the course has %d students",
				room.Name, room.Capacity, req.Course.StudentCount),
		}
	}
	return decision, nil
}
