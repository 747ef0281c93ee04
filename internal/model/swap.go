package model

// Swap request status values. Pending is the only initial state; accepted
// and rejected are terminal.
const (
	SwapPending  = "pending"
	SwapAccepted = "accepted"
	SwapRejected = "rejected"
)

// SwapRequest links a requester to a book they want to swap for. Book and
// requester are exposed as ids; BookOwnerID is carried for authorization
// checks and never serialized.
type SwapRequest struct {
	ID          int    `json:"id" db:"id"`
	BookID      int    `json:"book" db:"book_id"`
	RequesterID int    `json:"requester" db:"requester_id"`
	Status      string `json:"status" db:"status"`
	CreatedAt   string `json:"created_at" db:"created_at"`
	BookOwnerID int    `json:"-" db:"-"`
}

// SwapCreate represents a create request. Status, requester and created_at
// are server-assigned; client-supplied values are accepted but ignored.
type SwapCreate struct {
	Book      int    `json:"book" binding:"required"`
	Status    string `json:"status"`
	Requester int    `json:"requester"`
}

// SwapUpdate carries a status transition
type SwapUpdate struct {
	Status string `json:"status" binding:"required"`
}

// SwapList is the list envelope
type SwapList struct {
	Count   int           `json:"count"`
	Results []SwapRequest `json:"results"`
}
