package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/4bhisheksharma/book-swap3/internal/model"
)

func TestCreateBookNameBoundary(t *testing.T) {
	tempDB(t)
	alice := seedUser(t, "alice")

	// 255 characters is the limit
	longest := strings.Repeat("A", 255)
	book, err := CreateBook(alice, &model.BookCreate{Name: longest}, "")
	require.NoError(t, err)
	require.Equal(t, longest, book.Name)

	_, err = CreateBook(alice, &model.BookCreate{Name: strings.Repeat("A", 256)}, "")
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "name")

	// Surrounding whitespace is stripped before the length check and before
	// the write, so padding cannot smuggle an over-long name through
	padded := "  " + strings.Repeat("B", 250) + "  "
	book, err = CreateBook(alice, &model.BookCreate{Name: padded}, "")
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("B", 250), book.Name)
}

func TestUpdateBookNameBoundary(t *testing.T) {
	tempDB(t)
	alice := seedUser(t, "alice")
	bookID := seedBook(t, alice)

	// Validation and persistence must see the same trimmed value
	padded := strings.Repeat("A", 250) + strings.Repeat(" ", 20)
	updated, err := UpdateBook(alice, bookID, &model.BookUpdate{Name: &padded})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("A", 250), updated.Name)
	require.LessOrEqual(t, len(updated.Name), 255)

	stored, err := GetBook(alice, bookID)
	require.NoError(t, err)
	require.LessOrEqual(t, len(stored.Name), 255)

	tooLong := strings.Repeat("A", 256)
	_, err = UpdateBook(alice, bookID, &model.BookUpdate{Name: &tooLong})
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "name")
}
