package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// NewPaginationMeta computes the page count for a filtered total.
// (total + limit - 1) / limit rounds up and yields 0 when total is 0.
func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	lastPage := 0
	if limit > 0 {
		lastPage = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:    total,
		Page:     page,
		LastPage: lastPage,
	}
}

type ListEnvelope struct {
	Data any             `json:"data"`
	Meta *PaginationMeta `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Success writes the payload as-is; list endpoints wrap data with meta.
func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	if meta != nil {
		c.JSON(status, ListEnvelope{Data: data, Meta: meta})
		return
	}
	c.JSON(status, data)
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ErrorEnvelope{
		Error: ErrorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}
