package rest

import (
	"errors"
	"foodRanking/business/review"
	"foodRanking/domain"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFor maps business errors onto HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrVendorNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, review.ErrInvalidInput),
		errors.Is(err, domain.ErrOrderNotDelivered),
		errors.Is(err, domain.ErrOrderCancelled):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReviewExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReviewForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// errorJSON writes err with its mapped status. Internal details stay in the logs.
func errorJSON(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	return c.JSON(status, ResponseError{Message: msg})
}

func pathUUID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func invalidParam(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid " + name})
}

func currentUser(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get("user_id").(uuid.UUID)
	return id, ok
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return strings.EqualFold(role, "ADMIN")
}
