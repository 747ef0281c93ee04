package repository

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/4bhisheksharma/book-swap3/internal/model"
)

func tempDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { Close() })
}

func mustCreateUser(t *testing.T, username string) int {
	t.Helper()
	id, err := CreateUser(username, "hash", username+"@example.com")
	require.NoError(t, err)
	return id
}

func mustCreateBook(t *testing.T, ownerID int, name, price string) int {
	t.Helper()
	id, err := CreateBook(ownerID, name, "", 0, decimal.RequireFromString(price), "")
	require.NoError(t, err)
	return id
}

func TestUserUniqueConstraints(t *testing.T) {
	tempDB(t)

	mustCreateUser(t, "alice")

	_, err := CreateUser("alice", "hash", "other@example.com")
	require.ErrorIs(t, err, ErrDuplicateUsername,
		"a duplicate username must surface as a duplicate, not a store fault")

	_, err = CreateUser("alice2", "hash", "alice@example.com")
	require.ErrorIs(t, err, ErrDuplicateEmail,
		"a duplicate email must surface as a duplicate, not a store fault")
}

func TestBookOwnershipScoping(t *testing.T) {
	tempDB(t)

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	bookID := mustCreateBook(t, alice, "Dune", "9.99")

	book, err := GetBookByID(alice, bookID)
	require.NoError(t, err)
	require.NotNil(t, book)
	require.Equal(t, "alice", book.Owner)
	require.Equal(t, "9.99", book.Price.String())
	require.True(t, book.IsAvailable)

	// The same book is invisible when scoped to another user
	book, err = GetBookByID(bob, bookID)
	require.NoError(t, err)
	require.Nil(t, book)

	aliceBooks, err := ListBooksByOwner(alice)
	require.NoError(t, err)
	require.Len(t, aliceBooks, 1)

	bobBooks, err := ListBooksByOwner(bob)
	require.NoError(t, err)
	require.Empty(t, bobBooks)
}

func TestListBooksExcludingOwner(t *testing.T) {
	tempDB(t)

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	mustCreateBook(t, alice, "Dune", "9.99")
	unavailable := mustCreateBook(t, alice, "Hyperion", "4.50")

	off := false
	found, err := UpdateBook(alice, unavailable, &model.BookUpdate{IsAvailable: &off})
	require.NoError(t, err)
	require.True(t, found)

	others, err := ListBooksExcludingOwner(bob)
	require.NoError(t, err)
	require.Len(t, others, 1, "only available books from other users are listed")
	require.Equal(t, "Dune", others[0].Name)

	own, err := ListBooksExcludingOwner(alice)
	require.NoError(t, err)
	require.Empty(t, own)
}

func TestUpdateBookPartial(t *testing.T) {
	tempDB(t)

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	bookID := mustCreateBook(t, alice, "Dune", "9.99")

	credit := 7
	found, err := UpdateBook(alice, bookID, &model.BookUpdate{Credit: &credit})
	require.NoError(t, err)
	require.True(t, found)

	book, err := GetBookByID(alice, bookID)
	require.NoError(t, err)
	require.Equal(t, 7, book.Credit)
	require.Equal(t, "Dune", book.Name, "untouched fields keep their values")
	require.Equal(t, "9.99", book.Price.String())

	// Scoped update against someone else's book matches nothing
	found, err = UpdateBook(bob, bookID, &model.BookUpdate{Credit: &credit})
	require.NoError(t, err)
	require.False(t, found)

	// Empty update reports reachability without writing
	found, err = UpdateBook(alice, bookID, &model.BookUpdate{})
	require.NoError(t, err)
	require.True(t, found)

	found, err = UpdateBook(alice, bookID+100, &model.BookUpdate{})
	require.NoError(t, err)
	require.False(t, found)
}

func TestDeleteBookCascades(t *testing.T) {
	tempDB(t)

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	carol := mustCreateUser(t, "carol")
	bookID := mustCreateBook(t, alice, "Dune", "9.99")

	swap1, err := CreateSwap(bookID, bob)
	require.NoError(t, err)
	_, err = CreateSwap(bookID, carol)
	require.NoError(t, err)

	// Not the owner: nothing happens
	deleted, _, err := DeleteBook(bob, bookID)
	require.NoError(t, err)
	require.False(t, deleted)

	count, err := CountSwapsForBook(bookID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	deleted, _, err = DeleteBook(alice, bookID)
	require.NoError(t, err)
	require.True(t, deleted)

	count, err = CountSwapsForBook(bookID)
	require.NoError(t, err)
	require.Zero(t, count, "swap requests must go with their book")

	swap, err := GetSwapByID(swap1)
	require.NoError(t, err)
	require.Nil(t, swap)

	book, err := GetBookByID(alice, bookID)
	require.NoError(t, err)
	require.Nil(t, book)

	// Idempotent failure
	deleted, _, err = DeleteBook(alice, bookID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestSwapCarriesBookOwner(t *testing.T) {
	tempDB(t)

	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	bookID := mustCreateBook(t, alice, "Dune", "9.99")

	swapID, err := CreateSwap(bookID, bob)
	require.NoError(t, err)

	swap, err := GetSwapByID(swapID)
	require.NoError(t, err)
	require.NotNil(t, swap)
	require.Equal(t, model.SwapPending, swap.Status)
	require.Equal(t, bob, swap.RequesterID)
	require.Equal(t, alice, swap.BookOwnerID)
	require.NotEmpty(t, swap.CreatedAt)

	mine, err := ListSwapsForUser(bob)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := ListSwapsForUser(alice)
	require.NoError(t, err)
	require.Len(t, theirs, 1, "book owner participates in the swap")

	outsider := mustCreateUser(t, "carol")
	none, err := ListSwapsForUser(outsider)
	require.NoError(t, err)
	require.Empty(t, none)
}
