package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campusconnect/backend/internal/app/models"
)

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func condPtr(c models.BookCondition) *models.BookCondition { return &c }

func sampleBook() *models.Book {
	return &models.Book{
		Title:       "Introduction to Algorithms",
		Author:      "Cormen",
		ISBN:        strPtr("978-0262033848"),
		CourseCode:  strPtr("CS201"),
		Department:  strPtr("Computer Science"),
		Condition:   models.ConditionGood,
		Type:        models.BookTypeSell,
		Price:       floatPtr(45),
		IsAvailable: true,
	}
}

func TestBookMatchesQuery(t *testing.T) {
	book := sampleBook()

	assert.True(t, BookMatches(book, "", models.BookFilters{}), "empty query matches everything")
	assert.True(t, BookMatches(book, "ALGORITHMS", models.BookFilters{}), "query is case-insensitive")
	assert.True(t, BookMatches(book, "cormen", models.BookFilters{}), "author is searched")
	assert.True(t, BookMatches(book, "cs201", models.BookFilters{}), "course code is searched")
	assert.True(t, BookMatches(book, "0262033848", models.BookFilters{}), "isbn is searched")
	assert.False(t, BookMatches(book, "chemistry", models.BookFilters{}))
}

func TestBookMatchesIgnoresAvailability(t *testing.T) {
	book := sampleBook()
	book.IsAvailable = false

	assert.True(t, BookMatches(book, "", models.BookFilters{}), "sold listings still match an empty query")
	assert.True(t, BookMatches(book, "algorithms", models.BookFilters{}), "sold listings still match their title")
}

func TestBookMatchesFilters(t *testing.T) {
	book := sampleBook()

	assert.True(t, BookMatches(book, "", models.BookFilters{Department: strPtr("Computer Science")}))
	assert.False(t, BookMatches(book, "", models.BookFilters{Department: strPtr("Physics")}))

	assert.True(t, BookMatches(book, "", models.BookFilters{Condition: condPtr(models.ConditionGood)}))
	assert.False(t, BookMatches(book, "", models.BookFilters{Condition: condPtr(models.ConditionNew)}))

	assert.True(t, BookMatches(book, "", models.BookFilters{PriceMin: floatPtr(40), PriceMax: floatPtr(50)}))
	assert.False(t, BookMatches(book, "", models.BookFilters{PriceMin: floatPtr(50)}))
	assert.False(t, BookMatches(book, "", models.BookFilters{PriceMax: floatPtr(40)}))
}

func TestBookMatchesNilPriceExcludedByBounds(t *testing.T) {
	book := sampleBook()
	book.Price = nil

	assert.True(t, BookMatches(book, "", models.BookFilters{}), "no bounds, no price needed")
	assert.False(t, BookMatches(book, "", models.BookFilters{PriceMin: floatPtr(0)}), "price bound excludes unpriced listings")
	assert.False(t, BookMatches(book, "", models.BookFilters{PriceMax: floatPtr(100)}))
}

func TestBookMatchesNilOptionalFields(t *testing.T) {
	book := sampleBook()
	book.ISBN = nil
	book.CourseCode = nil
	book.Department = nil

	assert.True(t, BookMatches(book, "algorithms", models.BookFilters{}), "nil fields do not panic the query match")
	assert.False(t, BookMatches(book, "", models.BookFilters{Department: strPtr("Computer Science")}), "nil department fails a department filter")
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestSortEventsByDate(t *testing.T) {
	events := []*models.Event{
		{Name: "C", Date: day("2026-10-01"), Time: "18:00"},
		{Name: "A", Date: day("2026-09-01"), Time: "12:00"},
		{Name: "B", Date: day("2026-09-01"), Time: "09:00"},
	}

	SortEvents(events, models.SortByDate)

	assert.Equal(t, "B", events[0].Name, "same day orders by start time")
	assert.Equal(t, "A", events[1].Name)
	assert.Equal(t, "C", events[2].Name)
}

func TestSortEventsByNameCaseInsensitive(t *testing.T) {
	events := []*models.Event{
		{Name: "beta"},
		{Name: "Alpha"},
		{Name: "GAMMA"},
	}

	SortEvents(events, models.SortByName)

	assert.Equal(t, []string{"Alpha", "beta", "GAMMA"},
		[]string{events[0].Name, events[1].Name, events[2].Name})
}

func TestSortEventsByNameCollatesAccents(t *testing.T) {
	events := []*models.Event{
		{Name: "Zebra run"},
		{Name: "Éclair tasting"},
		{Name: "Art walk"},
	}

	SortEvents(events, models.SortByName)

	assert.Equal(t, []string{"Art walk", "Éclair tasting", "Zebra run"},
		[]string{events[0].Name, events[1].Name, events[2].Name},
		"É sorts with E, not after z")
}

func TestSortEventsUnknownKeyKeepsOrder(t *testing.T) {
	events := []*models.Event{{Name: "Z"}, {Name: "A"}}

	SortEvents(events, models.EventSortKey("bogus"))

	assert.Equal(t, "Z", events[0].Name)
	assert.Equal(t, "A", events[1].Name)
}

func TestSortEventsStable(t *testing.T) {
	events := []*models.Event{
		{Name: "First", Department: "CS"},
		{Name: "Second", Department: "CS"},
		{Name: "Third", Department: "Art"},
	}

	SortEvents(events, models.SortByDepartment)

	assert.Equal(t, "Third", events[0].Name)
	assert.Equal(t, "First", events[1].Name, "equal departments keep incoming order")
	assert.Equal(t, "Second", events[2].Name)
}

func TestEventMatchesSearch(t *testing.T) {
	event := &models.Event{Name: "Hack Night", Department: "Computer Science", Venue: "Main Hall"}

	assert.True(t, EventMatchesSearch(event, ""))
	assert.True(t, EventMatchesSearch(event, "hack"))
	assert.True(t, EventMatchesSearch(event, "computer"))
	assert.True(t, EventMatchesSearch(event, "MAIN"))
	assert.False(t, EventMatchesSearch(event, "robotics"))
}

func TestToggleAttendance(t *testing.T) {
	attendees, attending := ToggleAttendance([]int64{1, 2}, 3)
	assert.True(t, attending)
	assert.Equal(t, []int64{1, 2, 3}, attendees)

	attendees, attending = ToggleAttendance(attendees, 3)
	assert.False(t, attending)
	assert.Equal(t, []int64{1, 2}, attendees)
}

func TestToggleAttendanceDoubleToggleIsIdentity(t *testing.T) {
	original := []int64{5, 9, 12}

	once, _ := ToggleAttendance(original, 9)
	twice, attending := ToggleAttendance(once, 9)

	assert.True(t, attending)
	assert.ElementsMatch(t, original, twice)
	assert.Equal(t, []int64{5, 9, 12}, original, "input slice is not mutated")
}
