package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	pkgErrors "task-planner/pkg/errors"
)

var errIDRequired = pkgErrors.NewHTTPError(400, "id is required")

func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	return req, nil
}

func (h *handler) processQuickReq(c *gin.Context) (quickReq, error) {
	var req quickReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, msgTextRequired)
	}
	return req, nil
}

func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	return req, nil
}

// processUpdateReq binds the body and the :id URI param.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errIDRequired
	}
	return req, nil
}

func (h *handler) processStatusReq(c *gin.Context) (statusReq, error) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errIDRequired
	}
	return req, nil
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
