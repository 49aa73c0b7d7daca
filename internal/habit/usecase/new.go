package usecase

import (
	"time"

	"task-planner/internal/habit"
	"task-planner/internal/habit/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/log"
)

type implUseCase struct {
	repo   repository.Repository
	parser *datemath.Parser
	clock  func() time.Time
	l      log.Logger
}

// New creates the habit UseCase. "Today" is computed in the parser's
// timezone; clock defaults to time.Now.
func New(repo repository.Repository, parser *datemath.Parser, clock func() time.Time, l log.Logger) (habit.UseCase, error) {
	if parser == nil {
		var err error
		if parser, err = datemath.NewParser("Local"); err != nil {
			return nil, err
		}
	}
	if clock == nil {
		clock = time.Now
	}
	return &implUseCase{repo: repo, parser: parser, clock: clock, l: l}, nil
}
