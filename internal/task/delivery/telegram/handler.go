package telegram

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task-planner/internal/model"
	"task-planner/internal/task"
	pkgLog "task-planner/pkg/log"
	pkgResponse "task-planner/pkg/response"
	pkgTelegram "task-planner/pkg/telegram"
)

const helpText = `Send me a task in plain words, e.g. "call John tomorrow at 9am".

Commands:
/list - tasks needing attention
/stats - task counts
/done <id> - mark a task completed
/start <id> - start working on a task`

type handler struct {
	l      pkgLog.Logger
	uc     task.UseCase
	bot    pkgTelegram.Sender
	secret string
}

// HandleWebhook acknowledges the update right away and processes the message
// in the background, since Telegram expects a fast response.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.secret != "" {
		got := c.GetHeader(pkgTelegram.SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			h.l.Warnf(ctx, "telegram handler: rejected update with bad secret")
			pkgResponse.Unauthorized(c)
			return
		}
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.ErrorWithStatus(c, http.StatusBadRequest, 1, "invalid update", nil)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	requestID := pkgLog.RequestIDFromContext(ctx)

	go func() {
		bgCtx := pkgLog.ContextWithRequestID(context.Background(), requestID)
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, errorMessage(err))
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func scopeFor(msg *pkgTelegram.Message) model.Scope {
	if msg.From == nil {
		return model.Scope{UserID: fmt.Sprintf("telegram_chat_%d", msg.Chat.ID)}
	}
	return model.Scope{UserID: fmt.Sprintf("telegram_%d", msg.From.ID)}
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	sc := scopeFor(msg)
	chatID := msg.Chat.ID

	cmd, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		return h.bot.SendMessage(ctx, chatID, helpText)
	case "/start":
		if arg == "" {
			return h.bot.SendMessage(ctx, chatID, "Welcome to Task Planner!\n\n"+helpText)
		}
		return h.setStatus(ctx, sc, chatID, arg, model.StatusInProgress)
	case "/done":
		if arg == "" {
			return h.bot.SendMessage(ctx, chatID, "Usage: /done <id>")
		}
		return h.setStatus(ctx, sc, chatID, arg, model.StatusCompleted)
	case "/list":
		out, err := h.uc.Overview(ctx, sc, 10)
		if err != nil {
			return err
		}
		return h.bot.SendMessage(ctx, chatID, formatTaskList(out.Tasks))
	case "/stats":
		out, err := h.uc.Stats(ctx, sc)
		if err != nil {
			return err
		}
		return h.bot.SendMessage(ctx, chatID, fmt.Sprintf(
			"Total: %d\nCompleted: %d (today %d)\nIn progress: %d\nUrgent: %d\nDue today: %d\nOverdue: %d",
			out.Total, out.Completed, out.CompletedToday, out.InProgress, out.Urgent, out.DueToday, out.Overdue))
	}

	out, err := h.uc.CreateFromText(ctx, sc, task.ParseInput{Text: text})
	if err != nil {
		return err
	}
	return h.bot.SendMessage(ctx, chatID, "Task created: "+formatTask(out.Task))
}

func (h *handler) setStatus(ctx context.Context, sc model.Scope, chatID int64, id string, status model.TaskStatus) error {
	out, err := h.uc.SetStatus(ctx, sc, task.SetStatusInput{ID: id, Status: string(status)})
	if err != nil {
		return err
	}
	return h.bot.SendMessage(ctx, chatID, fmt.Sprintf("%s is now %s", out.Task.Title, out.Task.Status))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTask(t model.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s (%s", shortID(t.ID), t.Title, t.Priority)
	if t.DueDate != "" {
		fmt.Fprintf(&sb, ", due %s", t.DueDate)
		if t.Time != nil {
			fmt.Fprintf(&sb, " %s", t.Time)
		}
	}
	sb.WriteByte(')')
	if t.CalendarLink != "" {
		fmt.Fprintf(&sb, "\n%s", t.CalendarLink)
	}
	return sb.String()
}

func formatTaskList(tasks []model.Task) string {
	if len(tasks) == 0 {
		return "Nothing to do."
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%d. %s", i+1, formatTask(t))
	}
	return strings.Join(lines, "\n")
}
