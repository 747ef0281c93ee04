package swap

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/4bhisheksharma/book-swap3/internal/model"
	"github.com/4bhisheksharma/book-swap3/internal/service"
)

// Create handles swap request creation. The requester is always the
// authenticated caller and the status always starts as pending; any values
// for them in the body are ignored.
func Create(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req model.SwapCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	swap, err := service.CreateSwap(userID, req.Book)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, swap)
}

// List returns the swap requests the caller participates in
func List(c *gin.Context) {
	userID := c.GetInt("user_id")

	list, err := service.ListSwaps(userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Retrieve returns a single swap request visible to the caller
func Retrieve(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := swapID(c)
	if !ok {
		return
	}

	swap, err := service.GetSwap(userID, id)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, swap)
}

// Update moves a pending swap request to accepted or rejected. Only the
// owner of the target book may do this.
func Update(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := swapID(c)
	if !ok {
		return
	}

	var req model.SwapUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	swap, err := service.UpdateSwapStatus(userID, id, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, swap)
}

// Delete removes a swap request the caller participates in
func Delete(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := swapID(c)
	if !ok {
		return
	}

	if err := service.DeleteSwap(userID, id); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func swapID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("swap_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid swap request ID"})
		return 0, false
	}
	return id, true
}

func respondErr(c *gin.Context, err error) {
	var fieldErrs service.FieldErrors
	switch {
	case errors.Is(err, service.ErrSwapNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Swap request not found"})
	case errors.Is(err, service.ErrNotBookOwner):
		c.JSON(http.StatusForbidden, gin.H{"detail": "Only the book owner can update the request status"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"detail": "Swap request status can no longer change"})
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	default:
		zap.L().Error("Ledger operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
