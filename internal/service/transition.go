package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/metrics"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/repository"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

// Step is one read-modify-write of a pattern list.
type Step struct {
	Action string
	List   repository.PatternListRepository
}

// Name identifies the step in logs and metrics, for example "remove_safe".
func (s Step) Name() string {
	return s.Action + "_" + s.List.Name()
}

// TransitionOrchestrator moves a number between the safe, neutral and blocked
// states by editing the pattern lists, and deletes numbers outright.
//
// Every step re-reads its file, so the plan is always applied to what the
// files contain now. Steps run in order and the first failure stops the
// sequence; steps already applied are not rolled back.
type TransitionOrchestrator struct {
	safe    repository.PatternListRepository
	blocked repository.PatternListRepository
	names   repository.NameRepository
	cache   *FileCache
}

// NewTransitionOrchestrator creates a TransitionOrchestrator. Files it
// changes are dropped from cache.
func NewTransitionOrchestrator(
	safe, blocked repository.PatternListRepository,
	names repository.NameRepository,
	cache *FileCache,
) *TransitionOrchestrator {
	return &TransitionOrchestrator{
		safe:    safe,
		blocked: blocked,
		names:   names,
		cache:   cache,
	}
}

// Plan returns the steps that bring a number to target.
func (o *TransitionOrchestrator) Plan(target models.Status) ([]Step, error) {
	switch target {
	case models.StatusBlocked:
		return []Step{
			{Action: constants.StepRemove, List: o.safe},
			{Action: constants.StepAppend, List: o.blocked},
		}, nil
	case models.StatusSafe:
		return []Step{
			{Action: constants.StepRemove, List: o.blocked},
			{Action: constants.StepAppend, List: o.safe},
		}, nil
	case models.StatusNeutral:
		return []Step{
			{Action: constants.StepRemove, List: o.safe},
			{Action: constants.StepRemove, List: o.blocked},
		}, nil
	default:
		return nil, utils.NewInvalidStatusError(string(target))
	}
}

// Transition applies the plan for target to number and returns the operation
// id it was logged under. number must already be validated.
func (o *TransitionOrchestrator) Transition(ctx context.Context, target models.Status, number string) (string, error) {
	steps, err := o.Plan(target)
	if err != nil {
		return "", err
	}

	operationID := uuid.NewString()
	err = o.run(ctx, operationID, number, steps)
	metrics.Transitions.WithLabelValues(string(target), metrics.Result(err)).Inc()
	if err != nil {
		return operationID, err
	}

	utils.LogCallerEvent(constants.LogEventClassify, operationID, number, map[string]string{
		constants.LogFieldStatus: string(target),
	})
	return operationID, nil
}

// Delete removes number from both lists and clears its stored name, in that
// order. The call history check belongs to the caller.
func (o *TransitionOrchestrator) Delete(ctx context.Context, number string) (string, error) {
	operationID := uuid.NewString()
	steps := []Step{
		{Action: constants.StepRemove, List: o.safe},
		{Action: constants.StepRemove, List: o.blocked},
	}
	if err := o.run(ctx, operationID, number, steps); err != nil {
		return operationID, err
	}

	if err := ctx.Err(); err != nil {
		return operationID, err
	}
	hadName := o.names.Get(number) != ""
	err := o.names.Set(context.WithoutCancel(ctx), number, "")
	utils.LogFileStep(operationID, constants.StepClearName, o.names.File().Path(), number, hadName, err)
	if err != nil {
		return operationID, fmt.Errorf("step %s failed: %w", constants.StepClearName, err)
	}

	utils.LogCallerEvent(constants.LogEventDelete, operationID, number, nil)
	return operationID, nil
}

// run executes steps strictly in order. A step that has started is not
// cancelled; cancellation is checked only between steps.
func (o *TransitionOrchestrator) run(ctx context.Context, operationID, number string, steps []Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		changed, err := o.apply(context.WithoutCancel(ctx), step, number)
		o.cache.Invalidate(step.List.File().Path())
		utils.LogFileStep(operationID, step.Name(), step.List.File().Path(), number, changed, err)
		if err != nil {
			return fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
		metrics.FileSteps.WithLabelValues(step.Name(), strconv.FormatBool(changed)).Inc()
	}
	return nil
}

func (o *TransitionOrchestrator) apply(ctx context.Context, step Step, number string) (bool, error) {
	switch step.Action {
	case constants.StepRemove:
		return step.List.Remove(ctx, number)
	case constants.StepAppend:
		return step.List.AppendIfAbsent(ctx, number, o.names.Get(number))
	default:
		return false, fmt.Errorf("unknown step action %q", step.Action)
	}
}
