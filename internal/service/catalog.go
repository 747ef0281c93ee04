package service

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/4bhisheksharma/book-swap3/internal/model"
	"github.com/4bhisheksharma/book-swap3/internal/repository"
)

var ErrBookNotFound = errors.New("book not found")

const maxBookNameLen = 255

// CreateBook validates the request and creates a book owned by ownerID.
// The owner always comes from the authenticated caller; nothing the client
// sends can change it.
func CreateBook(ownerID int, req *model.BookCreate, imagePath string) (*model.Book, error) {
	errs := FieldErrors{}

	name := strings.TrimSpace(req.Name)
	validateBookName(name, errs)

	credit := 0
	if req.Credit != nil {
		validateCredit(*req.Credit, errs)
		credit = *req.Credit
	}

	price := decimal.Zero
	if req.Price != nil {
		validatePrice(*req.Price, errs)
		price = *req.Price
	}

	if len(errs) > 0 {
		return nil, errs
	}

	id, err := repository.CreateBook(ownerID, name, req.Description, credit, price, imagePath)
	if err != nil {
		return nil, err
	}

	return GetBook(ownerID, id)
}

// ListBooks returns the caller's own books, or everyone else's available
// books when mine is false
func ListBooks(ownerID int, mine bool) (*model.BookList, error) {
	var books []model.Book
	var err error

	if mine {
		books, err = repository.ListBooksByOwner(ownerID)
	} else {
		books, err = repository.ListBooksExcludingOwner(ownerID)
	}
	if err != nil {
		return nil, err
	}

	if books == nil {
		books = []model.Book{}
	}
	return &model.BookList{Count: len(books), Results: books}, nil
}

// GetBook returns a book scoped to ownerID. Books owned by other users are
// indistinguishable from absent ones.
func GetBook(ownerID, bookID int) (*model.Book, error) {
	book, err := repository.GetBookByID(ownerID, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// UpdateBook applies a partial update to a book owned by ownerID. Owner, id
// and created_at are immutable; the update type simply has no slots for them.
func UpdateBook(ownerID, bookID int, upd *model.BookUpdate) (*model.Book, error) {
	errs := FieldErrors{}

	if upd.Name != nil {
		// Validate and persist the same trimmed value
		name := strings.TrimSpace(*upd.Name)
		validateBookName(name, errs)
		upd.Name = &name
	}
	if upd.Credit != nil {
		validateCredit(*upd.Credit, errs)
	}
	if upd.Price != nil {
		validatePrice(*upd.Price, errs)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	found, err := repository.UpdateBook(ownerID, bookID, upd)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrBookNotFound
	}

	return GetBook(ownerID, bookID)
}

// DeleteBook removes a book owned by ownerID together with every swap
// request that references it, atomically. Returns the stored image path so
// the caller can remove the file after the transaction commits.
func DeleteBook(ownerID, bookID int) (string, error) {
	deleted, image, err := repository.DeleteBook(ownerID, bookID)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", ErrBookNotFound
	}
	return image, nil
}

func validateBookName(name string, errs FieldErrors) {
	if name == "" {
		errs.Add("name", "This field is required")
		return
	}
	if len(name) > maxBookNameLen {
		errs.Add("name", "Ensure this field has no more than 255 characters")
	}
}

func validateCredit(credit int, errs FieldErrors) {
	if credit < 0 {
		errs.Add("credit", "Ensure this value is greater than or equal to 0")
	}
}

func validatePrice(price decimal.Decimal, errs FieldErrors) {
	if price.IsNegative() {
		errs.Add("price", "Ensure this value is greater than or equal to 0")
	}
	if price.Exponent() < -2 {
		errs.Add("price", "Ensure that there are no more than 2 decimal places")
	}
}
