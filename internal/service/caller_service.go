// Package service implements the jcadmin operations over the jcblock files.
//
// CallerService is the single entry point used by the HTTP handlers and the
// CLI. Reads go through a FileCache keyed on modification time; mutations go
// through the TransitionOrchestrator, which always reads the files fresh.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yasinhessnawi1/jcadmin/internal/classifier"
	"github.com/yasinhessnawi1/jcadmin/internal/config"
	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/history"
	"github.com/yasinhessnawi1/jcadmin/internal/metrics"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/patternlist"
	"github.com/yasinhessnawi1/jcadmin/internal/repository"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

// CallerService reconciles the call log, the two pattern lists and the name
// database into the caller views, and applies classification, rename and
// delete requests.
type CallerService struct {
	callLog      repository.TextFile
	safe         repository.PatternListRepository
	blocked      repository.PatternListRepository
	names        repository.NameRepository
	cache        *FileCache
	classifier   *classifier.Classifier
	orchestrator *TransitionOrchestrator
	limits       config.LimitSettings
}

// NewCallerService creates a CallerService over the given repositories.
//
// Parameters:
//   - callLog: The call log written by the device
//   - safe: The whitelist
//   - blocked: The blacklist
//   - names: The name database, already loaded or bootstrapped
//   - limits: Name length ceiling, match mode and default window size
func NewCallerService(
	callLog repository.TextFile,
	safe, blocked repository.PatternListRepository,
	names repository.NameRepository,
	limits config.LimitSettings,
) *CallerService {
	cache := NewFileCache()
	return &CallerService{
		callLog:      callLog,
		safe:         safe,
		blocked:      blocked,
		names:        names,
		cache:        cache,
		classifier:   classifier.New(limits.MatchMode),
		orchestrator: NewTransitionOrchestrator(safe, blocked, names, cache),
		limits:       limits,
	}
}

// NewCallerServiceFromConfig builds the repositories from the file settings,
// bootstraps the name database and returns the service.
func NewCallerServiceFromConfig(ctx context.Context, cfg *config.AppConfig) (*CallerService, error) {
	callLog := repository.NewTextFile(cfg.Files.CallLogPath())
	safeFile := repository.NewTextFile(cfg.Files.SafeListPath())
	blockedFile := repository.NewTextFile(cfg.Files.BlockedListPath())
	names := repository.NewNameRepository(repository.NewTextFile(cfg.Files.DatabasePath()))

	if _, err := NewBootstrapper(callLog, safeFile, blockedFile, names).Run(ctx); err != nil {
		return nil, err
	}

	return NewCallerService(
		callLog,
		repository.NewPatternListRepository(constants.ListSafe, safeFile),
		repository.NewPatternListRepository(constants.ListBlocked, blockedFile),
		names,
		cfg.Limits,
	), nil
}

// DefaultCallLimit is the window size used when a request names none.
func (s *CallerService) DefaultCallLimit() int {
	return s.limits.DefaultCallLimit
}

// GetRecentCalls returns calls [start, start+limit) of the call log, newest
// first, with per-number statistics over the whole log.
func (s *CallerService) GetRecentCalls(ctx context.Context, start, limit int) (*models.RecentCalls, error) {
	text, err := s.cache.Get(ctx, s.callLog)
	if err != nil {
		return nil, fmt.Errorf("failed to read call log: %w", err)
	}

	recent := history.AggregateCalls(text, start, limit, s.names)
	if recent.Skipped > 0 {
		metrics.ParseSkips.WithLabelValues(constants.FileKindCallLog).Add(float64(recent.Skipped))
	}
	return recent, nil
}

// GetCallerDetail returns the most recent call from number with its stored
// name, call count and current classification, plus the time of every call.
// A number that never called gets a neutral record with no call time.
func (s *CallerService) GetCallerDetail(ctx context.Context, number string) (*models.CallerDetail, error) {
	if err := utils.ValidatePhoneNumber(number); err != nil {
		return nil, err
	}

	text, err := s.cache.Get(ctx, s.callLog)
	if err != nil {
		return nil, fmt.Errorf("failed to read call log: %w", err)
	}
	safe, blocked, err := s.tables(ctx)
	if err != nil {
		return nil, err
	}

	calls := history.History(text, number)
	record := &models.CallerRecord{
		CallRecord: models.CallRecord{Status: models.StatusNeutral, Number: number},
		Name:       s.names.Get(number),
		Count:      len(calls),
	}
	whens := make([]string, 0, len(calls))
	if len(calls) > 0 {
		record.CallRecord = *calls[0]
		for _, call := range calls {
			whens = append(whens, call.When)
		}
	}
	record.CurrentStatus = s.classifier.Status(number, record.CallerID, safe, blocked)

	return &models.CallerDetail{Call: record, History: whens}, nil
}

// DeleteCaller removes every trace of a number that has never called: its
// pattern list records and its stored name. It refuses numbers present in
// the call log.
func (s *CallerService) DeleteCaller(ctx context.Context, number string) (err error) {
	defer func() {
		metrics.CallerMutations.WithLabelValues(constants.LogEventDelete, metrics.Result(err)).Inc()
	}()

	if err := utils.ValidatePhoneNumber(number); err != nil {
		return err
	}

	text, err := s.callLog.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read call log: %w", err)
	}
	if len(history.History(text, number)) > 0 {
		return utils.NewCallHistoryConflictError(number)
	}

	_, err = s.orchestrator.Delete(ctx, number)
	return err
}

// FetchPatternTable maps each pattern of the named list to its comment.
func (s *CallerService) FetchPatternTable(ctx context.Context, list string) (*models.PatternTable, error) {
	text, err := s.readList(ctx, list)
	if err != nil {
		return nil, err
	}
	return &models.PatternTable{Table: patternlist.Table(text)}, nil
}

// FetchPatternDetail lists the records of the named list in file order,
// including the date the device last matched each one.
func (s *CallerService) FetchPatternDetail(ctx context.Context, list string) (*models.PatternTableDetail, error) {
	text, err := s.readList(ctx, list)
	if err != nil {
		return nil, err
	}
	return &models.PatternTableDetail{List: list, Records: patternlist.Records(text)}, nil
}

// RenameCaller sets the display name of number. The name is trimmed; an
// empty name clears it. Renaming to the current name succeeds without
// touching the database file.
func (s *CallerService) RenameCaller(ctx context.Context, number, name string) (err error) {
	if err := utils.ValidatePhoneNumber(number); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	previous := s.names.Get(number)
	if name == previous {
		return nil
	}
	if err := utils.ValidateName(name, s.limits.MaxNameLength); err != nil {
		return err
	}

	defer func() {
		metrics.CallerMutations.WithLabelValues(constants.LogEventRename, metrics.Result(err)).Inc()
	}()

	if err := s.names.Set(ctx, number, name); err != nil {
		return fmt.Errorf("failed to rename caller: %w", err)
	}

	utils.LogCallerEvent(constants.LogEventRename, "", number, map[string]string{
		"had_name": fmt.Sprint(previous != ""),
		"has_name": fmt.Sprint(name != ""),
	})
	return nil
}

// Classify moves number to status and returns the status the device will
// now apply to it.
func (s *CallerService) Classify(ctx context.Context, status, number string) (*models.ClassifyResponse, error) {
	if err := utils.ValidatePhoneNumber(number); err != nil {
		return nil, err
	}
	if err := utils.ValidateStatus(status); err != nil {
		return nil, err
	}

	if _, err := s.orchestrator.Transition(ctx, models.Status(status), number); err != nil {
		return nil, err
	}

	safe, blocked, err := s.tables(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ClassifyResponse{Status: s.classifier.Status(number, "", safe, blocked)}, nil
}

// PollModificationTimes stats the four files concurrently and drops any
// cached content that is now stale. The first failure cancels the rest.
func (s *CallerService) PollModificationTimes(ctx context.Context) (*models.ModificationTimes, error) {
	defer metrics.ObservePoll(time.Now())

	ctx, cancel := context.WithTimeout(ctx, constants.PollTimeout)
	defer cancel()

	times := &models.ModificationTimes{}
	targets := []struct {
		file  repository.TextFile
		stamp *models.FileStamp
	}{
		{s.callLog, &times.CallLog},
		{s.safe.File(), &times.SafeList},
		{s.blocked.File(), &times.BlockedList},
		{s.names.File(), &times.Database},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			modified, err := target.file.ModTime(gctx)
			if err != nil {
				return err
			}
			target.stamp.Modified = modified
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to poll modification times: %w", err)
	}

	for _, target := range targets {
		s.cache.Observe(target.file.Path(), target.stamp.Modified)
	}
	return times, nil
}

// CheckHealth reports whether each file can be stat'ed.
func (s *CallerService) CheckHealth(ctx context.Context) *models.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, constants.FileHealthCheckTimeout)
	defer cancel()

	status := &models.HealthStatus{Status: constants.HealthOK, Files: make(map[string]string)}
	for kind, file := range map[string]repository.TextFile{
		constants.FileKindCallLog:     s.callLog,
		constants.FileKindSafeList:    s.safe.File(),
		constants.FileKindBlockedList: s.blocked.File(),
		constants.FileKindDatabase:    s.names.File(),
	} {
		if _, err := file.ModTime(ctx); err != nil {
			status.Status = constants.HealthDegraded
			status.Files[kind] = err.Error()
			continue
		}
		status.Files[kind] = constants.HealthOK
	}
	return status
}

func (s *CallerService) list(name string) (repository.PatternListRepository, error) {
	switch name {
	case constants.ListSafe:
		return s.safe, nil
	case constants.ListBlocked:
		return s.blocked, nil
	default:
		return nil, utils.NewValidationError(constants.ParamFileType, constants.MsgInvalidFileType)
	}
}

func (s *CallerService) readList(ctx context.Context, name string) (string, error) {
	list, err := s.list(name)
	if err != nil {
		return "", err
	}
	text, err := s.cache.Get(ctx, list.File())
	if err != nil {
		return "", fmt.Errorf("failed to read %s list: %w", name, err)
	}
	return text, nil
}

func (s *CallerService) tables(ctx context.Context) (safe, blocked map[string]string, err error) {
	safeText, err := s.readList(ctx, constants.ListSafe)
	if err != nil {
		return nil, nil, err
	}
	blockedText, err := s.readList(ctx, constants.ListBlocked)
	if err != nil {
		return nil, nil, err
	}
	return patternlist.Table(safeText), patternlist.Table(blockedText), nil
}
