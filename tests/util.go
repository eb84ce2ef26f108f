package testutil

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/course"
	"github.com/maendeleo/backend/core/progress"
	dummydb "github.com/maendeleo/backend/storage/database/dummy"
)

// PrepareDB returns a fresh in-memory store.
func PrepareDB(t *testing.T) *dummydb.DB {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateModule(t *testing.T, db *dummydb.DB, id, title, offeringID string, published bool) course.Module {
	mod := course.Module{
		ID:    id,
		Title: title,
	}
	if offeringID != "" {
		mod.CourseOfferingID = null.StringFrom(offeringID)
	}
	if published {
		mod.PublishedAt = null.TimeFrom(time.Now().UTC())
	}
	db.AddModule(mod)
	return mod
}

func CreateSection(t *testing.T, db *dummydb.DB, id, moduleID, title string, order int, published bool) course.Section {
	sec := course.Section{
		ID:       id,
		ModuleID: moduleID,
		Title:    title,
		Order:    order,
	}
	if published {
		sec.PublishedAt = null.TimeFrom(time.Now().UTC())
	}
	db.AddSection(sec)
	return sec
}

func CreateContentItem(t *testing.T, db *dummydb.DB, id, sectionID, title string, order int, contentType string, published bool) course.ContentItem {
	item := course.ContentItem{
		ID:          id,
		SectionID:   sectionID,
		Title:       title,
		Order:       order,
		ContentType: contentType,
	}
	if published {
		item.PublishedAt = null.TimeFrom(time.Now().UTC())
	}
	db.AddContentItem(item)
	return item
}

func CreateAssignment(t *testing.T, db *dummydb.DB, id, sectionID, title string, order int, due time.Time, graceMinutes int, allowLate bool) course.ContentItem {
	item := course.ContentItem{
		ID:                  id,
		SectionID:           sectionID,
		Title:               title,
		Order:               order,
		PublishedAt:         null.TimeFrom(time.Now().UTC()),
		ContentType:         course.ContentTypeAssignment,
		DueDate:             null.TimeFrom(due.UTC()),
		AllowLateSubmission: allowLate,
	}
	if graceMinutes > 0 {
		item.GracePeriodMinutes = null.IntFrom(graceMinutes)
	}
	db.AddContentItem(item)
	return item
}

func CreateProgress(t *testing.T, db *dummydb.DB, studentID, itemID, moduleID string, status progress.Status, at time.Time) progress.ContentProgress {
	row := progress.ContentProgress{
		StudentID:      studentID,
		ContentItemID:  itemID,
		ModuleID:       moduleID,
		Status:         status,
		LastAccessedAt: null.TimeFrom(at.UTC()),
	}
	if status == progress.StatusCompleted {
		row.CompletedAt = null.TimeFrom(at.UTC())
	}
	db.AddProgress(row)
	return row
}

func Enroll(t *testing.T, db *dummydb.DB, studentID, offeringID, status string) progress.Enrollment {
	enr := progress.Enrollment{
		StudentID:        studentID,
		CourseOfferingID: offeringID,
		Status:           status,
	}
	db.AddEnrollment(enr)
	return enr
}

func CreateCourseSection(t *testing.T, db *dummydb.DB, id, mentorID, offeringID string) progress.CourseSection {
	cs := progress.CourseSection{
		ID:               id,
		MentorID:         mentorID,
		CourseOfferingID: offeringID,
	}
	db.AddCourseSection(cs)
	return cs
}

func CreateCourseInfo(t *testing.T, db *dummydb.DB, offeringID, name, code string) course.CourseInfo {
	info := course.CourseInfo{
		OfferingID: offeringID,
		Name:       name,
		Code:       code,
	}
	db.AddCourseInfo(info)
	return info
}
