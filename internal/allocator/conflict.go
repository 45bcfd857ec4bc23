package allocator

import "github.com/noah-isme/campus-timetable-api/internal/models"

// overlaps applies half-open interval semantics: touching endpoints are not a
// conflict.
func overlaps(newStart, newEnd, existingStart, existingEnd int) bool {
	return newStart < existingEnd && newEnd > existingStart
}

func entryInterval(e models.ScheduleEntry) (int, int, bool) {
	start, err := ParseClock(e.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err := ParseClock(e.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func examInterval(e models.Exam) (int, int, bool) {
	start, err := ParseClock(e.StartTime)
	if err != nil {
		return 0, 0, false
	}
	return start, start + e.DurationMinutes, true
}

// FindRoomConflict reports the first session or exam occupying the room on
// the given day with an overlapping interval. excludeID skips the event being
// edited in place.
func (d *Dataset) FindRoomConflict(roomID, day string, start, end int, excludeID string) (models.PlacementConflict, bool) {
	for i := range d.Entries {
		entry := d.Entries[i]
		if excludeID != "" && entry.ID == excludeID {
			continue
		}
		if entry.RoomID != roomID || entry.Day != day {
			continue
		}
		eStart, eEnd, ok := entryInterval(entry)
		if !ok || !overlaps(start, end, eStart, eEnd) {
			continue
		}
		return models.PlacementConflict{
			Dimension: models.ConflictDimensionRoom,
			EntryID:   entry.ID,
			CourseID:  entry.CourseID,
			RoomID:    entry.RoomID,
			Day:       entry.Day,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		}, true
	}

	for i := range d.Exams {
		exam := d.Exams[i]
		if excludeID != "" && exam.ID == excludeID {
			continue
		}
		if exam.RoomID != roomID || exam.Day != day {
			continue
		}
		eStart, eEnd, ok := examInterval(exam)
		if !ok || !overlaps(start, end, eStart, eEnd) {
			continue
		}
		return models.PlacementConflict{
			Dimension: models.ConflictDimensionRoom,
			ExamID:    exam.ID,
			CourseID:  exam.CourseID,
			RoomID:    exam.RoomID,
			Day:       exam.Day,
			StartTime: exam.StartTime,
			EndTime:   FormatClock(eEnd),
		}, true
	}

	return models.PlacementConflict{}, false
}

// RoomBusy reports whether the room has any overlapping commitment.
func (d *Dataset) RoomBusy(roomID, day string, start, end int, excludeID string) bool {
	_, busy := d.FindRoomConflict(roomID, day, start, end, excludeID)
	return busy
}

// FindInstructorConflict reports the first session or exam on the given day
// that belongs to a course taught by the named instructor and overlaps the
// interval, regardless of room. Matching is exact string equality on the
// instructor name.
func (d *Dataset) FindInstructorConflict(instructor, day string, start, end int, excludeID string) (models.PlacementConflict, bool) {
	if instructor == "" {
		return models.PlacementConflict{}, false
	}

	for i := range d.Entries {
		entry := d.Entries[i]
		if excludeID != "" && entry.ID == excludeID {
			continue
		}
		if entry.Day != day {
			continue
		}
		course := d.CourseByID(entry.CourseID)
		if course == nil || course.Instructor != instructor {
			continue
		}
		eStart, eEnd, ok := entryInterval(entry)
		if !ok || !overlaps(start, end, eStart, eEnd) {
			continue
		}
		return models.PlacementConflict{
			Dimension:  models.ConflictDimensionInstructor,
			EntryID:    entry.ID,
			CourseID:   entry.CourseID,
			RoomID:     entry.RoomID,
			Instructor: instructor,
			Day:        entry.Day,
			StartTime:  entry.StartTime,
			EndTime:    entry.EndTime,
		}, true
	}

	for i := range d.Exams {
		exam := d.Exams[i]
		if excludeID != "" && exam.ID == excludeID {
			continue
		}
		if exam.Day != day {
			continue
		}
		course := d.CourseByID(exam.CourseID)
		if course == nil || course.Instructor != instructor {
			continue
		}
		eStart, eEnd, ok := examInterval(exam)
		if !ok || !overlaps(start, end, eStart, eEnd) {
			continue
		}
		return models.PlacementConflict{
			Dimension:  models.ConflictDimensionInstructor,
			ExamID:     exam.ID,
			CourseID:   exam.CourseID,
			RoomID:     exam.RoomID,
			Instructor: instructor,
			Day:        exam.Day,
			StartTime:  exam.StartTime,
			EndTime:    FormatClock(eEnd),
		}, true
	}

	return models.PlacementConflict{}, false
}

// InstructorBusy reports whether the instructor has any overlapping
// commitment in any room.
func (d *Dataset) InstructorBusy(instructor, day string, start, end int, excludeID string) bool {
	_, busy := d.FindInstructorConflict(instructor, day, start, end, excludeID)
	return busy
}
