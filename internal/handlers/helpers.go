package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "jbucks/internal/errors"
	"jbucks/internal/flash"
	"jbucks/internal/logger"
)

// parsePathID parses a uint path parameter. A non-numeric id never matches a
// stored row, so callers treat the error as not-found.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// render pops any pending flash message into the template data and renders
// the named template.
func render(c *gin.Context, codec *flash.Codec, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if msg, ok := codec.Pop(c); ok {
		data["Flash"] = msg
	}
	c.HTML(http.StatusOK, name, data)
}

// notFound renders the shared 404 page. Unknown ids are a plain not-found
// response, never a flash message.
func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}

// failWith logs the failure, attaches it as an error flash, and redirects.
// All validation and storage failures on write paths funnel through here;
// only the human-readable message reaches the user.
func failWith(c *gin.Context, codec *flash.Codec, err error, location string) {
	logger.Get().Warnw("request failed",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	codec.Error(c, "Error: "+err.Error())
	c.Redirect(http.StatusSeeOther, location)
}
