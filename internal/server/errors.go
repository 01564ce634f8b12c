package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Veraticus/dex/internal/auth"
	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/contact"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []common.FieldError `json:"fields,omitempty"`
}

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid input", Fields: verr.Fields})
	case errors.Is(err, contact.ErrTermsNotAccepted),
		errors.Is(err, catalog.ErrUnknownType):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, auth.ErrAlreadySignedIn):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}
