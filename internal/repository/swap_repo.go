package repository

import (
	"database/sql"
	"time"

	"github.com/4bhisheksharma/book-swap3/internal/model"
)

const swapSelect = `
	SELECT s.id, s.book_id, s.requester_id, s.status, s.created_at, b.owner_id
	FROM swap_requests s
	JOIN books b ON b.id = s.book_id
`

// CreateSwap inserts a pending swap request and returns its id. Status and
// created_at are assigned here, never taken from the client.
func CreateSwap(bookID, requesterID int) (int, error) {
	now := time.Now().Format(time.RFC3339)
	query := `
		INSERT INTO swap_requests (book_id, requester_id, status, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := db.Exec(query, bookID, requesterID, model.SwapPending, now)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

// GetSwapByID returns a swap request with the owning user of its target
// book, or nil
func GetSwapByID(swapID int) (*model.SwapRequest, error) {
	swap := &model.SwapRequest{}
	err := db.QueryRow(swapSelect+` WHERE s.id = ?`, swapID).Scan(
		&swap.ID, &swap.BookID, &swap.RequesterID, &swap.Status,
		&swap.CreatedAt, &swap.BookOwnerID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return swap, nil
}

// ListSwapsForUser returns swap requests the user participates in, either
// as the requester or as the owner of the target book
func ListSwapsForUser(userID int) ([]model.SwapRequest, error) {
	rows, err := db.Query(
		swapSelect+` WHERE s.requester_id = ? OR b.owner_id = ? ORDER BY s.id`,
		userID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var swaps []model.SwapRequest
	for rows.Next() {
		var swap model.SwapRequest
		err := rows.Scan(
			&swap.ID, &swap.BookID, &swap.RequesterID, &swap.Status,
			&swap.CreatedAt, &swap.BookOwnerID,
		)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}

	return swaps, rows.Err()
}

// UpdateSwapStatus sets the status of a swap request
func UpdateSwapStatus(swapID int, status string) (bool, error) {
	result, err := db.Exec(`UPDATE swap_requests SET status = ? WHERE id = ?`, status, swapID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DeleteSwap removes a swap request
func DeleteSwap(swapID int) (bool, error) {
	result, err := db.Exec(`DELETE FROM swap_requests WHERE id = ?`, swapID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// CountSwapsForBook returns the number of swap requests targeting a book
func CountSwapsForBook(bookID int) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM swap_requests WHERE book_id = ?`, bookID).Scan(&count)
	return count, err
}
