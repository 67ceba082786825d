package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"churchadmin/internal/middleware"
	"churchadmin/internal/model"
	"churchadmin/internal/service"
	"churchadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	var te *service.TransitionError
	var ce *service.ConflictError
	var se *service.SaveError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, response.Invalid(http.StatusUnprocessableEntity, ve.Fields))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.As(err, &te):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, te.Error()))
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, ce.Message))
	case errors.As(err, &se):
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, service.SaveFailedMessage))
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal server error"))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

// actingUser returns the identity RequireAuth stored; routes are always
// registered behind it, so a missing user aborts with 401
func actingUser(c *gin.Context) (model.ActingUser, bool) {
	user, ok := middleware.ActingUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
	}
	return user, ok
}

// sendExport renders into memory first so a failure can still be reported as JSON
func sendExport(c *gin.Context, name, format string, render func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		respondError(c, err)
		return
	}

	contentType, ext := "text/csv; charset=utf-8", "csv"
	if format == service.FormatHTML {
		contentType, ext = "text/html; charset=utf-8", "html"
	}
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().Format("20060102"), ext)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
