package course

import (
	"github.com/volatiletech/null/v8"
)

// Content types
const (
	ContentTypeLesson     = "LESSON"
	ContentTypeVideo      = "VIDEO"
	ContentTypeQuiz       = "QUIZ"
	ContentTypeAssignment = "ASSIGNMENT"
)

var ContentTypes = []string{ContentTypeLesson, ContentTypeVideo, ContentTypeQuiz, ContentTypeAssignment}

type (
	// Module is the top-level content container. A null CourseOfferingID marks
	// a template module not tied to a live offering.
	Module struct {
		ID               string      `json:"id"`
		Title            string      `json:"title"`
		CourseOfferingID null.String `json:"course_offering_id"`
		PublishedAt      null.Time   `json:"published_at"`
		Sections         []Section   `json:"sections,omitempty"`
	}

	// Section is an ordered group of content items within a module.
	Section struct {
		ID          string        `json:"id"`
		ModuleID    string        `json:"module_id"`
		Title       string        `json:"title"`
		Order       int           `json:"order"`
		PublishedAt null.Time     `json:"published_at"`
		Items       []ContentItem `json:"items,omitempty"`
	}

	// ContentItem is a single piece of content within a section. Assignment
	// metadata (due date, grace period, late-submission flag) is only
	// meaningful when ContentType is ContentTypeAssignment.
	ContentItem struct {
		ID                  string    `json:"id"`
		SectionID           string    `json:"section_id"`
		Title               string    `json:"title"`
		Order               int       `json:"order"`
		PublishedAt         null.Time `json:"published_at"`
		ContentType         string    `json:"content_type"`
		DueDate             null.Time `json:"due_date"`
		GracePeriodMinutes  null.Int  `json:"grace_period_minutes"`
		AllowLateSubmission bool      `json:"allow_late_submission"`
	}

	// CourseInfo is presentation metadata for a course offering.
	CourseInfo struct {
		OfferingID string `json:"offering_id"`
		Name       string `json:"name"`
		Code       string `json:"code"`
	}
)

// IsAssignment reports whether the item carries assignment semantics.
func (it ContentItem) IsAssignment() bool {
	return it.ContentType == ContentTypeAssignment
}

// PublishedItems returns the published items of all published sections of the module.
func (m Module) PublishedItems() []ContentItem {
	var items []ContentItem
	for _, sec := range m.Sections {
		items = append(items, sec.Items...)
	}
	return items
}
