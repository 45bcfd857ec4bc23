package allocator

import (
	"sort"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// RankedRoom pairs a free room with its suitability score for one course.
type RankedRoom struct {
	Room  models.Room `json:"room"`
	Score float64     `json:"score"`
}

// FindAvailableRooms returns every room that can seat the course and is free
// for the interval, ranked best first. Undersized rooms are filtered before
// scoring; rooms with an overlapping session or exam are excluded too. Ties
// keep the dataset's room order.
func (d *Dataset) FindAvailableRooms(course models.Course, day string, start, end int, excludeID string) []RankedRoom {
	ranked := make([]RankedRoom, 0, len(d.Rooms))
	for i := range d.Rooms {
		room := d.Rooms[i]
		if room.Capacity < course.StudentCount {
			continue
		}
		if d.RoomBusy(room.ID, day, start, end, excludeID) {
			continue
		}
		ranked = append(ranked, RankedRoom{
			Room:  room,
			Score: ScoreRoom(room, course),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BestRoom returns the top-ranked room that is free for the interval, or
// false when none fits.
func (d *Dataset) BestRoom(course models.Course, day string, start, end int, excludeID string) (RankedRoom, bool) {
	ranked := d.FindAvailableRooms(course, day, start, end, excludeID)
	if len(ranked) == 0 {
		return RankedRoom{}, false
	}
	return ranked[0], true
}
