package http

import (
	"github.com/gin-gonic/gin"

	"task-planner/internal/habit"
	"task-planner/internal/middleware"
	"task-planner/pkg/response"
)

// Create godoc
// @Summary     Create a habit
// @Tags        Habits
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    false "Owner of the habit"
// @Param       body      body   createReq true  "Habit data"
// @Success     201 {object} habitResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/habits [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.Create(ctx, middleware.GetScope(c), habit.CreateInput{
		Title:     req.Title,
		Frequency: req.Frequency,
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newHabitResp(out.Habit))
}

// List godoc
// @Summary     List habits
// @Tags        Habits
// @Produce     json
// @Param       X-User-ID header string false "Owner of the habits"
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/habits [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.List(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(out.Habits))
}

// Complete godoc
// @Summary     Complete a habit for today
// @Description Extends the streak. A second completion on the same day is rejected with 409.
// @Tags        Habits
// @Produce     json
// @Param       X-User-ID header string false "Owner of the habit"
// @Param       id        path   string true  "Habit ID or prefix"
// @Success     200 {object} habitResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Already completed today"
// @Router      /api/v1/habits/{id}/complete [POST]
func (h *handler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.Complete(ctx, middleware.GetScope(c), id)
	if err != nil {
		h.l.Warnf(ctx, "uc.Complete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newHabitResp(out.Habit))
}

// Delete godoc
// @Summary     Delete a habit
// @Tags        Habits
// @Produce     json
// @Param       X-User-ID header string false "Owner of the habit"
// @Param       id        path   string true  "Habit ID or prefix"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/habits/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.Delete(ctx, middleware.GetScope(c), id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
