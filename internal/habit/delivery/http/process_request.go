package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "task-planner/pkg/errors"
)

func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	return req, nil
}

func (h *handler) processIDParam(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", errIDRequired
	}
	return id, nil
}
