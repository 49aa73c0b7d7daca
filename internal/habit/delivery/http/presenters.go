package http

import (
	"time"

	"task-planner/internal/model"
)

type createReq struct {
	Title     string `json:"title"     binding:"required,max=255"`
	Frequency string `json:"frequency" binding:"required"`
}

type habitResp struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Frequency     string    `json:"frequency"`
	Streak        int       `json:"streak"`
	LastCompleted string    `json:"lastCompleted,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (h *handler) newHabitResp(m model.Habit) habitResp {
	return habitResp{
		ID:            m.ID,
		Title:         m.Title,
		Frequency:     string(m.Frequency),
		Streak:        m.Streak,
		LastCompleted: m.LastCompleted,
		CreatedAt:     m.CreatedAt,
	}
}

type listResp struct {
	Habits []habitResp `json:"habits"`
}

func (h *handler) newListResp(hs []model.Habit) listResp {
	out := listResp{Habits: make([]habitResp, 0, len(hs))}
	for _, m := range hs {
		out.Habits = append(out.Habits, h.newHabitResp(m))
	}
	return out
}
