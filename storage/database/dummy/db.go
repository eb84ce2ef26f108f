package dummydb

import (
	"sync"

	"github.com/maendeleo/backend/core/course"
	"github.com/maendeleo/backend/core/progress"
)

// DB is an in-memory record store used by tests. Rows keep insertion order,
// matching the stores' stable-ordering contract.
type DB struct {
	sync.RWMutex

	modules   []course.Module
	sections  []course.Section
	items     []course.ContentItem
	rows      []progress.ContentProgress
	enrolls   []progress.Enrollment
	courseSec []progress.CourseSection
	offerings []course.CourseInfo
}

func Open() (*DB, error) {
	return &DB{}, nil
}

func (db *DB) AddModule(mod course.Module) {
	db.Lock()
	defer db.Unlock()
	db.modules = append(db.modules, mod)
}

func (db *DB) AddSection(sec course.Section) {
	db.Lock()
	defer db.Unlock()
	db.sections = append(db.sections, sec)
}

func (db *DB) AddContentItem(item course.ContentItem) {
	db.Lock()
	defer db.Unlock()
	db.items = append(db.items, item)
}

func (db *DB) AddProgress(row progress.ContentProgress) {
	db.Lock()
	defer db.Unlock()
	for i := range db.rows {
		if db.rows[i].StudentID == row.StudentID && db.rows[i].ContentItemID == row.ContentItemID {
			db.rows[i] = row
			return
		}
	}
	db.rows = append(db.rows, row)
}

func (db *DB) AddEnrollment(enr progress.Enrollment) {
	db.Lock()
	defer db.Unlock()
	db.enrolls = append(db.enrolls, enr)
}

func (db *DB) AddCourseSection(cs progress.CourseSection) {
	db.Lock()
	defer db.Unlock()
	db.courseSec = append(db.courseSec, cs)
}

func (db *DB) AddCourseInfo(info course.CourseInfo) {
	db.Lock()
	defer db.Unlock()
	db.offerings = append(db.offerings, info)
}
