package book

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/4bhisheksharma/book-swap3/internal/model"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/config"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/storage"
	"github.com/4bhisheksharma/book-swap3/internal/service"
)

// List returns the caller's books as {count, results}. With ?mine=false it
// returns available books listed by other users instead.
func List(c *gin.Context) {
	userID := c.GetInt("user_id")
	mine := c.DefaultQuery("mine", "true") != "false"

	list, err := service.ListBooks(userID, mine)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create handles book creation from either a JSON body or a multipart form
// with an optional image upload. The owner is always the authenticated
// caller.
func Create(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req *model.BookCreate
	var image *multipart.FileHeader

	if isForm(c) {
		var errs service.FieldErrors
		req, errs = bindCreateForm(c)
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, errs)
			return
		}
		if fh, err := c.FormFile("image"); err == nil {
			image = fh
		}
	} else {
		req = &model.BookCreate{}
		if err := c.ShouldBindJSON(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
			return
		}
	}

	imagePath := ""
	if image != nil {
		path, err := storage.SaveBookImage(mediaDir(), image)
		if err != nil {
			zap.L().Error("Failed to store book image", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store image"})
			return
		}
		imagePath = path
	}

	book, err := service.CreateBook(userID, req, imagePath)
	if err != nil {
		if imagePath != "" {
			storage.RemoveBookImage(mediaDir(), imagePath)
		}
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// Retrieve returns a single book owned by the caller
func Retrieve(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := service.GetBook(userID, id)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// Update applies a partial update to a book owned by the caller. PUT and
// PATCH behave identically; absent fields stay untouched.
func Update(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := bookID(c)
	if !ok {
		return
	}

	var upd *model.BookUpdate
	var oldImage string

	if isForm(c) {
		var errs service.FieldErrors
		upd, errs = bindUpdateForm(c)
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, errs)
			return
		}

		if fh, err := c.FormFile("image"); err == nil {
			existing, err := service.GetBook(userID, id)
			if err != nil {
				respondErr(c, err)
				return
			}
			oldImage = existing.Image

			path, err := storage.SaveBookImage(mediaDir(), fh)
			if err != nil {
				zap.L().Error("Failed to store book image", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store image"})
				return
			}
			upd.Image = &path
		}
	} else {
		upd = &model.BookUpdate{}
		if err := c.ShouldBindJSON(upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
			return
		}
	}

	book, err := service.UpdateBook(userID, id, upd)
	if err != nil {
		if upd.Image != nil {
			storage.RemoveBookImage(mediaDir(), *upd.Image)
		}
		respondErr(c, err)
		return
	}

	if upd.Image != nil && oldImage != "" {
		storage.RemoveBookImage(mediaDir(), oldImage)
	}

	c.JSON(http.StatusOK, book)
}

// Delete removes a book owned by the caller and cascades to its swap
// requests
func Delete(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := bookID(c)
	if !ok {
		return
	}

	image, err := service.DeleteBook(userID, id)
	if err != nil {
		respondErr(c, err)
		return
	}

	if image != "" {
		storage.RemoveBookImage(mediaDir(), image)
	}

	c.Status(http.StatusNoContent)
}

func bindCreateForm(c *gin.Context) (*model.BookCreate, service.FieldErrors) {
	errs := service.FieldErrors{}
	req := &model.BookCreate{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}

	if v, ok := c.GetPostForm("credit"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("credit", "A valid integer is required")
		} else {
			req.Credit = &n
		}
	}
	if v, ok := c.GetPostForm("price"); ok && v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs.Add("price", "A valid number is required")
		} else {
			req.Price = &d
		}
	}

	return req, errs
}

func bindUpdateForm(c *gin.Context) (*model.BookUpdate, service.FieldErrors) {
	errs := service.FieldErrors{}
	upd := &model.BookUpdate{}

	if v, ok := c.GetPostForm("name"); ok {
		upd.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		upd.Description = &v
	}
	if v, ok := c.GetPostForm("credit"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("credit", "A valid integer is required")
		} else {
			upd.Credit = &n
		}
	}
	if v, ok := c.GetPostForm("price"); ok && v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs.Add("price", "A valid number is required")
		} else {
			upd.Price = &d
		}
	}
	if v, ok := c.GetPostForm("is_available"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add("is_available", "A valid boolean is required")
		} else {
			upd.IsAvailable = &b
		}
	}

	return upd, errs
}

func bookID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("book_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid book ID"})
		return 0, false
	}
	return id, true
}

func isForm(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == "multipart/form-data" || ct == "application/x-www-form-urlencoded"
}

func mediaDir() string {
	if cfg := config.Get(); cfg != nil {
		return cfg.Media.Dir
	}
	return "media"
}

func respondErr(c *gin.Context, err error) {
	var fieldErrs service.FieldErrors
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Book not found"})
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	default:
		zap.L().Error("Catalog operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
