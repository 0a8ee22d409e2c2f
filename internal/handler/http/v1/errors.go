package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
)

// ErrorResponse - тело ответа с ошибкой
// @Description Ошибка; errors заполняется только для ошибок валидации
type ErrorResponse struct {
	Error  string         `json:"error"`
	Errors []e.FieldError `json:"errors,omitempty"`
}

// respondError переводит доменную ошибку в HTTP-ответ. Внутренняя причина
// пишется в лог и клиенту не отдаётся.
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var verr *e.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Errors: verr.Fields})
	case errors.Is(err, e.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, e.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, e.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict"})
	case errors.Is(err, e.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
