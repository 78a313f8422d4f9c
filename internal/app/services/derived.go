package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/campusconnect/backend/internal/app/models"
)

// Pure helpers shared by the services. They carry the exact semantics of
// the derived views, independent of whatever prefiltering a store did.

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BookMatches reports whether a listing satisfies a search query and
// filter set. The query is matched case-insensitively as a substring of
// title, author, ISBN or course code; empty query matches everything.
// Availability is not part of matching, sold listings still show up so
// a buyer can tell a book was traded here. Price bounds exclude
// listings without a price.
func BookMatches(book *models.Book, query string, filters models.BookFilters) bool {
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		if !strings.Contains(strings.ToLower(book.Title), q) &&
			!strings.Contains(strings.ToLower(book.Author), q) &&
			!strings.Contains(strings.ToLower(deref(book.ISBN)), q) &&
			!strings.Contains(strings.ToLower(deref(book.CourseCode)), q) {
			return false
		}
	}
	if filters.Department != nil && deref(book.Department) != *filters.Department {
		return false
	}
	if filters.Condition != nil && book.Condition != *filters.Condition {
		return false
	}
	if filters.Type != nil && book.Type != *filters.Type {
		return false
	}
	if filters.PriceMin != nil && (book.Price == nil || *book.Price < *filters.PriceMin) {
		return false
	}
	if filters.PriceMax != nil && (book.Price == nil || *book.Price > *filters.PriceMax) {
		return false
	}
	return true
}

// FilterBooks applies BookMatches to a slice, preserving order.
func FilterBooks(books []*models.Book, query string, filters models.BookFilters) []*models.Book {
	out := make([]*models.Book, 0, len(books))
	for _, b := range books {
		if BookMatches(b, query, filters) {
			out = append(out, b)
		}
	}
	return out
}

// EventMatchesSearch reports whether an event matches a free-text search
// over name, department and venue.
func EventMatchesSearch(event *models.Event, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(event.Name), q) ||
		strings.Contains(strings.ToLower(event.Department), q) ||
		strings.Contains(strings.ToLower(event.Venue), q)
}

// FilterEvents applies EventMatchesSearch to a slice, preserving order.
func FilterEvents(events []*models.Event, search string) []*models.Event {
	out := make([]*models.Event, 0, len(events))
	for _, e := range events {
		if EventMatchesSearch(e, search) {
			out = append(out, e)
		}
	}
	return out
}

// SortEvents orders events in place by the given key. Name and
// department compare with case-insensitive Unicode collation, so
// accented names land next to their base letter instead of after "z".
// Category is a fixed ASCII enum and compares case-insensitively by
// bytes. Date compares chronologically with the start time string as
// tiebreaker. The sort is stable, so equal keys keep their incoming
// order. An unknown key leaves the slice as is.
func SortEvents(events []*models.Event, key models.EventSortKey) {
	// Collators are stateful and not safe for concurrent use, so each
	// call gets its own.
	var less func(a, b *models.Event) bool
	switch key {
	case models.SortByName:
		c := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b *models.Event) bool {
			return c.CompareString(a.Name, b.Name) < 0
		}
	case models.SortByDate:
		less = func(a, b *models.Event) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.Time < b.Time
		}
	case models.SortByDepartment:
		c := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b *models.Event) bool {
			return c.CompareString(a.Department, b.Department) < 0
		}
	case models.SortByCategory:
		less = func(a, b *models.Event) bool {
			return strings.ToLower(string(a.Category)) < strings.ToLower(string(b.Category))
		}
	default:
		return
	}
	sort.SliceStable(events, func(i, j int) bool { return less(events[i], events[j]) })
}

// ToggleAttendance flips a user's RSVP on an attendee list and returns
// the updated list together with whether the user now attends. Applying
// it twice always restores the original membership.
func ToggleAttendance(attendees []int64, userID int64) ([]int64, bool) {
	for i, id := range attendees {
		if id == userID {
			out := make([]int64, 0, len(attendees)-1)
			out = append(out, attendees[:i]...)
			out = append(out, attendees[i+1:]...)
			return out, false
		}
	}
	out := make([]int64, 0, len(attendees)+1)
	out = append(out, attendees...)
	out = append(out, userID)
	return out, true
}
