package usecase

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/gcalendar"
	"task-planner/pkg/llmprovider"
	"task-planner/pkg/log"
	"task-planner/pkg/normalizer"
	"task-planner/pkg/prompt"
)

// CalendarScheduler books timed tasks. *gcalendar.Client implements it.
type CalendarScheduler interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// Config carries planner policy for the task use case.
type Config struct {
	// Urgency is the configured auto-urgency mode. A request flag turns
	// simple mode on when this is off.
	Urgency normalizer.UrgencyMode
	// DefaultDueTomorrow fills a missing due date on quick add.
	DefaultDueTomorrow bool

	Parser   *datemath.Parser
	Strategy prompt.Strategy

	CacheSize int
	CacheTTL  time.Duration

	Calendar   CalendarScheduler
	CalendarID string

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// completion is a cached raw model answer.
type completion struct {
	text     string
	provider string
}

type implUseCase struct {
	repo     repository.Repository
	llm      llmprovider.Generator
	cfg      Config
	parser   *datemath.Parser
	strategy prompt.Strategy
	cache    *expirable.LRU[string, completion]
	l        log.Logger
}

// New creates the task UseCase. llm may be nil, in which case text parsing
// reports task.ErrLLMUnavailable.
func New(repo repository.Repository, llm llmprovider.Generator, cfg Config, l log.Logger) (task.UseCase, error) {
	parser := cfg.Parser
	if parser == nil {
		var err error
		if parser, err = datemath.NewParser("Local"); err != nil {
			return nil, err
		}
	}

	strategy := cfg.Strategy
	if strategy == nil {
		var err error
		if strategy, err = prompt.New(prompt.StrategyAnchored, parser); err != nil {
			return nil, err
		}
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	uc := &implUseCase{
		repo:     repo,
		llm:      llm,
		cfg:      cfg,
		parser:   parser,
		strategy: strategy,
		l:        l,
	}
	if cfg.CacheSize > 0 {
		uc.cache = expirable.NewLRU[string, completion](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return uc, nil
}
