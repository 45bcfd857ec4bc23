package allocator

import "github.com/noah-isme/campus-timetable-api/internal/models"

// Placement is one slot assignment produced by a search.
type Placement struct {
	Course models.Course `json:"course"`
	Room   models.Room   `json:"room"`
	Day    string        `json:"day"`
	Slot   Slot          `json:"slot"`
	Score  float64       `json:"score"`
}

// SlotSearcher finds the best open slot-and-room pair for one session of a
// course against the current dataset.
type SlotSearcher interface {
	FindSlot(d *Dataset, course models.Course) (Placement, bool)
}

// GreedySearcher scans the full week grid and picks the highest-scoring
// candidate. The composite score prefers tight room fits, earlier days,
// earlier slots, and spreading a course's sessions across distinct days.
// DayCap bounds how many sessions of one course may land on the same day.
type GreedySearcher struct {
	Grid   Grid
	DayCap int
}

// Per-candidate weights of the composite score. Room fit dominates; the day
// and slot terms act as tie-breakers that pack the week front-to-back.
const (
	dayIndexWeight  = 2.0
	sameDayPenalty  = 10.0
	slotIndexWeight = 0.3
	defaultDayCap   = 2
)

// FindSlot evaluates every day/slot/room combination and returns the best
// one. It never stops early: a later day can still win when the earlier days
// are crowded with the course's own sessions.
func (s GreedySearcher) FindSlot(d *Dataset, course models.Course) (Placement, bool) {
	dayCap := s.DayCap
	if dayCap <= 0 {
		dayCap = defaultDayCap
	}

	var best Placement
	found := false

	for dayIdx, day := range AllDays() {
		sameDay := d.SessionsOn(course.ID, day)
		if sameDay >= dayCap {
			continue
		}
		for slotIdx, slot := range s.Grid.Slots() {
			start, err := ParseClock(slot.Start)
			if err != nil {
				continue
			}
			end, err := ParseClock(slot.End)
			if err != nil {
				continue
			}
			if d.InstructorBusy(course.Instructor, day, start, end, "") {
				continue
			}
			room, ok := d.BestRoom(course, day, start, end, "")
			if !ok {
				continue
			}
			score := room.Score -
				dayIndexWeight*float64(dayIdx) -
				sameDayPenalty*float64(sameDay) -
				slotIndexWeight*float64(slotIdx)
			if !found || score > best.Score {
				best = Placement{
					Course: course,
					Room:   room.Room,
					Day:    day,
					Slot:   slot,
					Score:  score,
				}
				found = true
			}
		}
	}

	return best, found
}

// UnplacedCourse records a course the auto-scheduler could not finish and how
// many sessions it still needs.
type UnplacedCourse struct {
	Course       models.Course `json:"course"`
	MissingHours int           `json:"missing_hours"`
	Reason       string        `json:"reason"`
}

// AutoScheduleResult summarizes one auto-scheduling run.
type AutoScheduleResult struct {
	Placed   int                    `json:"placed"`
	Entries  []models.ScheduleEntry `json:"entries"`
	Unplaced []UnplacedCourse       `json:"unplaced"`
}

// AutoScheduler drives the greedy search across all courses until their
// weekly quotas are met or no slot remains.
type AutoScheduler struct {
	searcher SlotSearcher
	newID    func() string
}

// NewAutoScheduler builds a scheduler around a searcher and an id generator
// for the entries it creates.
func NewAutoScheduler(searcher SlotSearcher, newID func() string) *AutoScheduler {
	return &AutoScheduler{searcher: searcher, newID: newID}
}

// Run places sessions for every course still below its weekly quota, in the
// dataset's course order. Each placement is committed to the dataset at once
// so later searches see it as occupied. Courses that cannot reach quota are
// reported, not treated as a failure of the run.
func (a *AutoScheduler) Run(d *Dataset) AutoScheduleResult {
	var result AutoScheduleResult

	for i := range d.Courses {
		course := d.Courses[i]
		missing := course.WeeklyHours - d.ScheduledCount(course.ID)
		for h := 0; h < missing; h++ {
			placement, ok := a.searcher.FindSlot(d, course)
			if !ok {
				result.Unplaced = append(result.Unplaced, UnplacedCourse{
					Course:       course,
					MissingHours: missing - h,
					Reason:       "no free slot with an adequate room",
				})
				break
			}
			entry := models.ScheduleEntry{
				ID:        a.newID(),
				CourseID:  course.ID,
				RoomID:    placement.Room.ID,
				Day:       placement.Day,
				StartTime: placement.Slot.Start,
				EndTime:   placement.Slot.End,
			}
			d.Commit(entry)
			result.Entries = append(result.Entries, entry)
			result.Placed++
		}
	}

	return result
}
