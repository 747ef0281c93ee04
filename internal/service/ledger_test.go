package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/4bhisheksharma/book-swap3/internal/model"
	"github.com/4bhisheksharma/book-swap3/internal/repository"
)

func seedUser(t *testing.T, username string) int {
	t.Helper()
	id, err := repository.CreateUser(username, "hash", username+"@example.com")
	require.NoError(t, err)
	return id
}

func seedBook(t *testing.T, ownerID int) int {
	t.Helper()
	id, err := repository.CreateBook(ownerID, "Dune", "", 5, decimal.RequireFromString("9.99"), "")
	require.NoError(t, err)
	return id
}

func TestCreateSwapForcesServerFields(t *testing.T) {
	tempDB(t)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	bookID := seedBook(t, alice)

	swap, err := CreateSwap(bob, bookID)
	require.NoError(t, err)
	require.Equal(t, model.SwapPending, swap.Status)
	require.Equal(t, bob, swap.RequesterID)
	require.NotEmpty(t, swap.CreatedAt)
}

func TestCreateSwapOnOwnBook(t *testing.T) {
	tempDB(t)

	alice := seedUser(t, "alice")
	bookID := seedBook(t, alice)

	_, err := CreateSwap(alice, bookID)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "book")
}

func TestCreateSwapOnMissingOrUnavailableBook(t *testing.T) {
	tempDB(t)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	bookID := seedBook(t, alice)

	var fieldErrs FieldErrors
	_, err := CreateSwap(bob, bookID+100)
	require.ErrorAs(t, err, &fieldErrs)

	off := false
	_, err = UpdateBook(alice, bookID, &model.BookUpdate{IsAvailable: &off})
	require.NoError(t, err)

	_, err = CreateSwap(bob, bookID)
	require.ErrorAs(t, err, &fieldErrs)
}

func TestSwapStatusTransitions(t *testing.T) {
	tempDB(t)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	bookID := seedBook(t, alice)

	swap, err := CreateSwap(bob, bookID)
	require.NoError(t, err)

	// The requester cannot decide the outcome
	_, err = UpdateSwapStatus(bob, swap.ID, model.SwapAccepted)
	require.ErrorIs(t, err, ErrNotBookOwner)

	// Unknown status is a validation failure
	var fieldErrs FieldErrors
	_, err = UpdateSwapStatus(alice, swap.ID, "maybe")
	require.ErrorAs(t, err, &fieldErrs)

	// Nothing transitions back to pending
	_, err = UpdateSwapStatus(alice, swap.ID, model.SwapPending)
	require.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := UpdateSwapStatus(alice, swap.ID, model.SwapAccepted)
	require.NoError(t, err)
	require.Equal(t, model.SwapAccepted, updated.Status)

	// Accepted is terminal
	_, err = UpdateSwapStatus(alice, swap.ID, model.SwapRejected)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSwapVisibilityScoping(t *testing.T) {
	tempDB(t)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	carol := seedUser(t, "carol")
	bookID := seedBook(t, alice)

	swap, err := CreateSwap(bob, bookID)
	require.NoError(t, err)

	// Both participants see it
	_, err = GetSwap(bob, swap.ID)
	require.NoError(t, err)
	_, err = GetSwap(alice, swap.ID)
	require.NoError(t, err)

	// An outsider cannot tell it exists
	_, err = GetSwap(carol, swap.ID)
	require.ErrorIs(t, err, ErrSwapNotFound)

	err = DeleteSwap(carol, swap.ID)
	require.ErrorIs(t, err, ErrSwapNotFound)

	// The requester can withdraw
	require.NoError(t, DeleteSwap(bob, swap.ID))
	_, err = GetSwap(bob, swap.ID)
	require.ErrorIs(t, err, ErrSwapNotFound)
}
