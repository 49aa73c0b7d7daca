package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task-planner/internal/middleware"
	"task-planner/internal/task"
	"task-planner/pkg/response"
)

type errorResp struct {
	Error string `json:"error"`
}

// ParseTask godoc
// @Summary     Parse free text into a task
// @Description Sends the text to the completion service and returns the normalized task. Nothing is stored.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body         body  parseReq true  "Text to parse"
// @Param       auto_urgency query bool     false "Derive priority from the due date"
// @Success     200 {object} normalizer.NormalizedTask
// @Failure     400 {object} errorResp "Text is required"
// @Failure     401 {object} errorResp "Upstream rejected the API key"
// @Failure     422 {object} errorResp "Completion could not be normalized"
// @Failure     429 {object} errorResp "Rate limit exceeded"
// @Failure     500 {object} errorResp "Internal Server Error"
// @Router      /api/parse-task [POST]
func (h *handler) ParseTask(c *gin.Context) {
	ctx := c.Request.Context()

	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Error: msgTextRequired})
		return
	}

	out, err := h.uc.ParseText(ctx, middleware.GetScope(c), task.ParseInput{
		Text:        req.Text,
		AutoUrgency: queryBool(c, "auto_urgency"),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.ParseText: %v", err)
		status, msg := parseError(err)
		c.JSON(status, errorResp{Error: msg})
		return
	}

	c.JSON(http.StatusOK, out.Task)
}

func (h *handler) rejectParse(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, errorResp{Error: msgRateLimited})
}

// Create godoc
// @Summary     Create a task
// @Description Creates a task from form fields.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    false "Owner of the task"
// @Param       body      body   createReq true  "Task data"
// @Success     201 {object} createResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Create(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newCreateResp(output))
}

// QuickAdd godoc
// @Summary     Create a task from free text
// @Description Parses the text and stores the resulting task.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string   false "Owner of the task"
// @Param       body      body   quickReq true  "Text to parse"
// @Success     201 {object} createResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Upstream rejected the API key"
// @Failure     422 {object} response.Resp "Completion could not be normalized"
// @Failure     429 {object} response.Resp "Rate limit exceeded"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/quick [POST]
func (h *handler) QuickAdd(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processQuickReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.CreateFromText(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateFromText: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newCreateResp(output))
}

// List godoc
// @Summary     List tasks
// @Description Returns tasks filtered and sorted. Archived tasks are hidden unless requested.
// @Tags        Tasks
// @Produce     json
// @Param       X-User-ID        header string false "Owner of the tasks"
// @Param       status           query  string false "todo, in-progress, completed or archived"
// @Param       priority         query  string false "low, medium, high or urgent"
// @Param       tag              query  string false "Tag filter"
// @Param       q                query  string false "Search in title, description and notes"
// @Param       due_from         query  string false "YYYY-MM-DD"
// @Param       due_to           query  string false "YYYY-MM-DD"
// @Param       include_archived query  bool   false "Include archived tasks"
// @Param       sort             query  string false "priority (default), due or created"
// @Param       limit            query  int    false "Page size (default: 20)"
// @Param       offset           query  int    false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.List(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Stats godoc
// @Summary     Task statistics
// @Tags        Tasks
// @Produce     json
// @Param       X-User-ID header string false "Owner of the tasks"
// @Success     200 {object} task.StatsOutput
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/stats [GET]
func (h *handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Stats(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.Stats: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, output)
}

// Overview godoc
// @Summary     Tasks needing attention
// @Description Active tasks ordered by priority, due date and age.
// @Tags        Tasks
// @Produce     json
// @Param       X-User-ID header string false "Owner of the tasks"
// @Param       limit     query  int    false "Number of tasks (default: 5)"
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/overview [GET]
func (h *handler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.Query("limit"))
	output, err := h.uc.Overview(ctx, middleware.GetScope(c), limit)
	if err != nil {
		h.l.Errorf(ctx, "uc.Overview: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get task detail
// @Description Returns a task by id or unique id prefix.
// @Tags        Tasks
// @Produce     json
// @Param       X-User-ID header string false "Owner of the task"
// @Param       id        path   string true  "Task ID or prefix"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Ambiguous id prefix"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errIDRequired)
		return
	}

	output, err := h.uc.Detail(ctx, middleware.GetScope(c), id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(output.Task))
}

// Update godoc
// @Summary     Update a task
// @Description Partial update. Empty fields keep their stored value.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    false "Owner of the task"
// @Param       id        path   string    true  "Task ID or prefix"
// @Param       body      body   updateReq true  "Fields to update"
// @Success     200 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Update(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(output.Task))
}

// SetStatus godoc
// @Summary     Change task status
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    false "Owner of the task"
// @Param       id        path   string    true  "Task ID or prefix"
// @Param       body      body   statusReq true  "New status"
// @Success     200 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Transition not allowed"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id}/status [PATCH]
func (h *handler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processStatusReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.SetStatus(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SetStatus: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(output.Task))
}

// Delete godoc
// @Summary     Delete a task
// @Tags        Tasks
// @Produce     json
// @Param       X-User-ID header string false "Owner of the task"
// @Param       id        path   string true  "Task ID or prefix"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errIDRequired)
		return
	}

	if err := h.uc.Delete(ctx, middleware.GetScope(c), id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
