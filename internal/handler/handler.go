// Package handler exposes the HTTP surface of the server tier. The caller is
// identified by the X-Sharer-User-Id header on every route that needs one.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// SharerHeader carries the id of the user making the request.
const SharerHeader = "X-Sharer-User-Id"

const (
	defaultFrom = 0
	defaultSize = 15
)

func sharerID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(SharerHeader)
	if raw == "" {
		return 0, apperror.InvalidArgument("%s header is required", SharerHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.InvalidArgument("%s header must be an integer", SharerHeader)
	}
	return id, nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.InvalidArgument("invalid %s", name)
	}
	return id, nil
}

func parsePage(c *gin.Context) (pageable.OffsetPage, error) {
	from := defaultFrom
	if raw := c.Query("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return pageable.OffsetPage{}, apperror.InvalidArgument("from must be an integer")
		}
		from = parsed
	}

	size := defaultSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return pageable.OffsetPage{}, apperror.InvalidArgument("size must be an integer")
		}
		size = parsed
	}

	return pageable.New(from, size)
}
