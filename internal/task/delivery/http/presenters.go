package http

import (
	"time"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/pkg/normalizer"
)

// --- Request DTOs ---

type parseReq struct {
	Text string `json:"text"`
}

type timeReq struct {
	Hour   int `json:"hour"   binding:"min=0,max=23"`
	Minute int `json:"minute" binding:"min=0,max=59"`
}

func (t *timeReq) toTimeOfDay() *normalizer.TimeOfDay {
	if t == nil {
		return nil
	}
	return &normalizer.TimeOfDay{Hour: t.Hour, Minute: t.Minute}
}

type createReq struct {
	Title         string   `json:"title"         binding:"required,max=255"`
	Description   string   `json:"description"   binding:"max=2000"`
	DueDate       string   `json:"dueDate"`
	Time          *timeReq `json:"time"`
	Priority      string   `json:"priority"`
	EstimatedTime int      `json:"estimatedTime" binding:"min=0"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
	AutoUrgency   bool     `json:"autoUrgency"`
}

func (r createReq) toInput() task.CreateInput {
	return task.CreateInput{
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       r.DueDate,
		Time:          r.Time.toTimeOfDay(),
		Priority:      r.Priority,
		EstimatedTime: r.EstimatedTime,
		Tags:          r.Tags,
		Notes:         r.Notes,
		AutoUrgency:   r.AutoUrgency,
	}
}

// ---

type quickReq struct {
	Text        string `json:"text"        binding:"required"`
	AutoUrgency bool   `json:"autoUrgency"`
}

func (r quickReq) toInput() task.ParseInput {
	return task.ParseInput{Text: r.Text, AutoUrgency: r.AutoUrgency}
}

// ---

type listReq struct {
	Status          string `form:"status"`
	Priority        string `form:"priority"`
	Tag             string `form:"tag"`
	Search          string `form:"q"`
	DueFrom         string `form:"due_from"`
	DueTo           string `form:"due_to"`
	IncludeArchived bool   `form:"include_archived"`
	Sort            string `form:"sort"`
	Limit           int    `form:"limit"`
	Offset          int    `form:"offset"`
}

func (r listReq) toInput() task.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	return task.ListInput{
		Status:          r.Status,
		Priority:        r.Priority,
		Tag:             r.Tag,
		Search:          r.Search,
		DueFrom:         r.DueFrom,
		DueTo:           r.DueTo,
		IncludeArchived: r.IncludeArchived,
		Sort:            r.Sort,
		Limit:           limit,
		Offset:          r.Offset,
	}
}

// ---

type updateReq struct {
	ID            string   `json:"-"` // populated from URI param
	Title         string   `json:"title"         binding:"omitempty,max=255"`
	Description   string   `json:"description"   binding:"omitempty,max=2000"`
	DueDate       string   `json:"dueDate"`
	Time          *timeReq `json:"time"`
	Priority      string   `json:"priority"`
	EstimatedTime int      `json:"estimatedTime" binding:"min=0"`
	ActualTime    int      `json:"actualTime"    binding:"min=0"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
}

func (r updateReq) toInput() task.UpdateInput {
	return task.UpdateInput{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       r.DueDate,
		Time:          r.Time.toTimeOfDay(),
		Priority:      r.Priority,
		EstimatedTime: r.EstimatedTime,
		ActualTime:    r.ActualTime,
		Tags:          r.Tags,
		Notes:         r.Notes,
	}
}

// ---

type statusReq struct {
	ID     string `json:"-"`
	Status string `json:"status" binding:"required"`
}

func (r statusReq) toInput() task.SetStatusInput {
	return task.SetStatusInput{ID: r.ID, Status: r.Status}
}

// --- Response DTOs ---

type taskResp struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	DueDate       string                `json:"dueDate,omitempty"`
	Time          *normalizer.TimeOfDay `json:"time,omitempty"`
	Priority      string                `json:"priority"`
	Status        string                `json:"status"`
	EstimatedTime int                   `json:"estimatedTime,omitempty"`
	ActualTime    int                   `json:"actualTime,omitempty"`
	Tags          []string              `json:"tags"`
	Notes         string                `json:"notes,omitempty"`
	CalendarLink  string                `json:"calendarLink,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	CompletedAt   *time.Time            `json:"completedAt,omitempty"`
}

func newTaskResp(t model.Task) taskResp {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return taskResp{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DueDate:       t.DueDate,
		Time:          t.Time,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		EstimatedTime: t.EstimatedTime,
		ActualTime:    t.ActualTime,
		Tags:          tags,
		Notes:         t.Notes,
		CalendarLink:  t.CalendarLink,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		CompletedAt:   t.CompletedAt,
	}
}

type warningResp struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type createResp struct {
	Task     taskResp      `json:"task"`
	Warnings []warningResp `json:"warnings,omitempty"`
}

func (h *handler) newCreateResp(out task.CreateOutput) createResp {
	resp := createResp{Task: newTaskResp(out.Task)}
	for _, w := range out.Warnings {
		resp.Warnings = append(resp.Warnings, warningResp{Field: w.Field, Reason: w.Reason})
	}
	return resp
}

type listResp struct {
	Tasks  []taskResp `json:"tasks"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t)
	}
	return listResp{
		Tasks:  tasks,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type detailResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newDetailResp(t model.Task) detailResp {
	return detailResp{Task: newTaskResp(t)}
}
