package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/4bhisheksharma/book-swap3/internal/model"
)

const bookSelect = `
	SELECT b.id, b.name, b.description, b.credit, b.price, b.image,
	       u.username, b.owner_id, b.is_available, b.created_at
	FROM books b
	JOIN users u ON u.id = b.owner_id
`

// CreateBook inserts a book owned by ownerID and returns its id
func CreateBook(ownerID int, name, description string, credit int, price decimal.Decimal, image string) (int, error) {
	now := time.Now().Format(time.RFC3339)
	query := `
		INSERT INTO books (owner_id, name, description, credit, price, image, is_available, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)
	`

	result, err := db.Exec(query, ownerID, name, description, credit, price.StringFixed(2), image, now)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

// ListBooksByOwner returns all books owned by ownerID in insertion order
func ListBooksByOwner(ownerID int) ([]model.Book, error) {
	rows, err := db.Query(bookSelect+` WHERE b.owner_id = ? ORDER BY b.id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

// ListBooksExcludingOwner returns available books owned by anyone but ownerID
func ListBooksExcludingOwner(ownerID int) ([]model.Book, error) {
	rows, err := db.Query(bookSelect+` WHERE b.owner_id != ? AND b.is_available = 1 ORDER BY b.id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

// GetBookByID returns the book only if it is owned by ownerID, or nil
func GetBookByID(ownerID, bookID int) (*model.Book, error) {
	row := db.QueryRow(bookSelect+` WHERE b.id = ? AND b.owner_id = ?`, bookID, ownerID)
	return scanBook(row)
}

// GetBookAny returns a book regardless of owner, or nil. Used by the swap
// ledger to resolve swap targets.
func GetBookAny(bookID int) (*model.Book, error) {
	row := db.QueryRow(bookSelect+` WHERE b.id = ?`, bookID)
	return scanBook(row)
}

// UpdateBook applies the non-nil fields of upd to the book, scoped to
// ownerID. Returns false when no matching book exists.
func UpdateBook(ownerID, bookID int, upd *model.BookUpdate) (bool, error) {
	var sets []string
	var args []interface{}

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Credit != nil {
		sets = append(sets, "credit = ?")
		args = append(args, *upd.Credit)
	}
	if upd.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, upd.Price.StringFixed(2))
	}
	if upd.IsAvailable != nil {
		sets = append(sets, "is_available = ?")
		args = append(args, boolToInt(*upd.IsAvailable))
	}
	if upd.Image != nil {
		sets = append(sets, "image = ?")
		args = append(args, *upd.Image)
	}

	if len(sets) == 0 {
		// Nothing to change; report whether the book is reachable at all
		book, err := GetBookByID(ownerID, bookID)
		if err != nil {
			return false, err
		}
		return book != nil, nil
	}

	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = ? AND owner_id = ?`, strings.Join(sets, ", "))
	args = append(args, bookID, ownerID)

	result, err := db.Exec(query, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DeleteBook removes the book and all swap requests that reference it in a
// single transaction, scoped to ownerID. It returns whether a book was
// deleted and the stored image path so the caller can remove the file.
func DeleteBook(ownerID, bookID int) (bool, string, error) {
	var deleted bool
	var image string

	err := WithTx(func(tx *sql.Tx) error {
		var img sql.NullString
		err := tx.QueryRow(
			`SELECT image FROM books WHERE id = ? AND owner_id = ?`,
			bookID, ownerID,
		).Scan(&img)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM swap_requests WHERE book_id = ?`, bookID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM books WHERE id = ? AND owner_id = ?`, bookID, ownerID); err != nil {
			return err
		}

		deleted = true
		if img.Valid {
			image = img.String
		}
		return nil
	})

	return deleted, image, err
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var book model.Book
		var description, image sql.NullString
		var price string
		var available int

		err := rows.Scan(
			&book.ID, &book.Name, &description, &book.Credit, &price, &image,
			&book.Owner, &book.OwnerID, &available, &book.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		book.Description = description.String
		book.Image = image.String
		book.IsAvailable = available != 0

		book.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
		}

		books = append(books, book)
	}

	return books, rows.Err()
}

func scanBook(row *sql.Row) (*model.Book, error) {
	var book model.Book
	var description, image sql.NullString
	var price string
	var available int

	err := row.Scan(
		&book.ID, &book.Name, &description, &book.Credit, &price, &image,
		&book.Owner, &book.OwnerID, &available, &book.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	book.Description = description.String
	book.Image = image.String
	book.IsAvailable = available != 0

	book.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
	}

	return &book, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
