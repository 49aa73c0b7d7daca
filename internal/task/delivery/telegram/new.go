package telegram

import (
	"github.com/gin-gonic/gin"

	"task-planner/internal/task"
	pkgLog "task-planner/pkg/log"
	pkgTelegram "task-planner/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler. An empty secret disables
// the webhook secret check.
func New(l pkgLog.Logger, uc task.UseCase, bot pkgTelegram.Sender, secret string) Handler {
	return &handler{
		l:      l,
		uc:     uc,
		bot:    bot,
		secret: secret,
	}
}
