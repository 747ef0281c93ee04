package service

import (
	"errors"

	"github.com/4bhisheksharma/book-swap3/internal/model"
	"github.com/4bhisheksharma/book-swap3/internal/repository"
)

var (
	ErrSwapNotFound      = errors.New("swap request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotBookOwner      = errors.New("only the book owner can update the request status")
)

// CreateSwap creates a pending swap request from requesterID on a book.
// Requester, status and created_at are server-assigned.
func CreateSwap(requesterID, bookID int) (*model.SwapRequest, error) {
	book, err := repository.GetBookAny(bookID)
	if err != nil {
		return nil, err
	}

	errs := FieldErrors{}
	switch {
	case book == nil:
		errs.Add("book", "Book not found")
	case book.OwnerID == requesterID:
		errs.Add("book", "Cannot request a swap on your own book")
	case !book.IsAvailable:
		errs.Add("book", "Book is not available for swap")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	id, err := repository.CreateSwap(bookID, requesterID)
	if err != nil {
		return nil, err
	}

	return repository.GetSwapByID(id)
}

// ListSwaps returns the swap requests userID participates in, either as the
// requester or as the owner of the target book
func ListSwaps(userID int) (*model.SwapList, error) {
	swaps, err := repository.ListSwapsForUser(userID)
	if err != nil {
		return nil, err
	}

	if swaps == nil {
		swaps = []model.SwapRequest{}
	}
	return &model.SwapList{Count: len(swaps), Results: swaps}, nil
}

// GetSwap returns a swap request visible to userID. Requests the user does
// not participate in look absent.
func GetSwap(userID, swapID int) (*model.SwapRequest, error) {
	swap, err := repository.GetSwapByID(swapID)
	if err != nil {
		return nil, err
	}
	if swap == nil || !participates(userID, swap) {
		return nil, ErrSwapNotFound
	}
	return swap, nil
}

// UpdateSwapStatus moves a pending swap request to accepted or rejected.
// Only the owner of the target book may transition; accepted and rejected
// are terminal.
func UpdateSwapStatus(userID, swapID int, status string) (*model.SwapRequest, error) {
	swap, err := GetSwap(userID, swapID)
	if err != nil {
		return nil, err
	}

	if userID != swap.BookOwnerID {
		return nil, ErrNotBookOwner
	}

	switch status {
	case model.SwapAccepted, model.SwapRejected:
	case model.SwapPending:
		// No transition leads back to pending
		return nil, ErrInvalidTransition
	default:
		errs := FieldErrors{}
		errs.Add("status", "Status must be one of: accepted, rejected")
		return nil, errs
	}

	if swap.Status != model.SwapPending {
		return nil, ErrInvalidTransition
	}

	found, err := repository.UpdateSwapStatus(swapID, status)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSwapNotFound
	}

	return GetSwap(userID, swapID)
}

// DeleteSwap removes a swap request. The requester may withdraw it and the
// book owner may clear it; anyone else sees it as absent.
func DeleteSwap(userID, swapID int) error {
	swap, err := GetSwap(userID, swapID)
	if err != nil {
		return err
	}

	found, err := repository.DeleteSwap(swap.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrSwapNotFound
	}
	return nil
}

func participates(userID int, swap *model.SwapRequest) bool {
	return userID == swap.RequesterID || userID == swap.BookOwnerID
}
