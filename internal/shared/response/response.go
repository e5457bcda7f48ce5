package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes an error envelope and stops the handler chain. Used by middleware.
func Abort(c *gin.Context, err *apperror.AppError) {
	Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// Paginated slices items by the page and page_size query parameters (defaults 1 and 10)
// and writes them with pagination meta.
func Paginated[T any](c *gin.Context, items []T) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	start := min((page-1)*pageSize, len(items))
	end := min(start+pageSize, len(items))

	meta := NewPaginationMeta(int64(len(items)), page, pageSize)
	Success(c, http.StatusOK, items[start:end], &meta)
}
