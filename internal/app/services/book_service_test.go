package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

type bookFixture struct {
	service *BookService
	books   *fakeBookStore
	users   *fakeUserStore

	owner *models.User
}

func newBookFixture() *bookFixture {
	fx := &bookFixture{
		books: newFakeBookStore(),
		users: newFakeUserStore(),
	}
	fx.service = NewBookService(fx.books, fx.users, zerolog.Nop())
	fx.owner = fx.users.add(&models.User{Name: "Owner", Email: "owner@university.edu", IsActive: true})
	return fx
}

func TestAddBookDerivesOwnerFromSession(t *testing.T) {
	fx := newBookFixture()

	book, err := fx.service.Add(context.Background(), fx.owner.ID, &dto.CreateBookRequest{
		Title:     "Linear Algebra",
		Author:    "Strang",
		Condition: "Good",
		Type:      "sell",
		Price:     floatPtr(25),
	})

	require.NoError(t, err)
	assert.Equal(t, fx.owner.ID, book.PostedBy)
	assert.Equal(t, "Owner", book.PosterName, "poster name is denormalized from the account")
	assert.True(t, book.IsAvailable)
	assert.NotZero(t, book.ID)
}

func TestGetBookCountsView(t *testing.T) {
	fx := newBookFixture()
	ctx := context.Background()
	id, err := fx.books.Create(ctx, sampleBook())
	require.NoError(t, err)

	book, err := fx.service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, book.Views)

	book, err = fx.service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, book.Views)
}

func TestUpdateBookOwnerOrAdminOnly(t *testing.T) {
	fx := newBookFixture()
	ctx := context.Background()
	book := sampleBook()
	book.PostedBy = fx.owner.ID
	id, err := fx.books.Create(ctx, book)
	require.NoError(t, err)
	newTitle := "Second Edition"

	_, err = fx.service.Update(ctx, 999, models.RoleStudent, id, &dto.UpdateBookRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := fx.service.Update(ctx, fx.owner.ID, models.RoleStudent, id, &dto.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Second Edition", updated.Title)

	_, err = fx.service.Update(ctx, 999, models.RoleAdmin, id, &dto.UpdateBookRequest{Title: &newTitle})
	assert.NoError(t, err, "admins may edit any listing")
}

func TestDeleteBookOwnerOrAdminOnly(t *testing.T) {
	fx := newBookFixture()
	ctx := context.Background()
	book := sampleBook()
	book.PostedBy = fx.owner.ID
	id, err := fx.books.Create(ctx, book)
	require.NoError(t, err)

	err = fx.service.Delete(ctx, 999, models.RoleStudent, id)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, fx.service.Delete(ctx, fx.owner.ID, models.RoleStudent, id))
	_, err = fx.books.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

// The fake store returns every row unfiltered, so these assertions hold
// only if the service applies the predicate itself.
func TestSearchAppliesPredicateOverStoreSuperset(t *testing.T) {
	fx := newBookFixture()
	ctx := context.Background()

	match := sampleBook()
	_, err := fx.books.Create(ctx, match)
	require.NoError(t, err)

	other := sampleBook()
	other.Title = "Organic Chemistry"
	other.Author = "Clayden"
	other.ISBN = nil
	other.CourseCode = strPtr("CHEM110")
	_, err = fx.books.Create(ctx, other)
	require.NoError(t, err)

	sold := sampleBook()
	sold.Title = "Discrete Mathematics"
	sold.ISBN = nil
	sold.CourseCode = strPtr("CS102")
	sold.IsAvailable = false
	_, err = fx.books.Create(ctx, sold)
	require.NoError(t, err)

	results, err := fx.service.Search(ctx, &dto.SearchBooksQuery{Query: "algorithms"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.ID, results[0].ID)

	results, err = fx.service.Search(ctx, &dto.SearchBooksQuery{Query: "discrete"})
	require.NoError(t, err)
	require.Len(t, results, 1, "sold listings still surface when they match")
	assert.Equal(t, sold.ID, results[0].ID)

	results, err = fx.service.Search(ctx, &dto.SearchBooksQuery{})
	require.NoError(t, err)
	assert.Len(t, results, 3, "empty query returns everything")

	condition := "Good"
	maxPrice := 40.0
	results, err = fx.service.Search(ctx, &dto.SearchBooksQuery{Condition: &condition, PriceMax: &maxPrice})
	require.NoError(t, err)
	assert.Empty(t, results, "every listing costs more than the cap")
}
