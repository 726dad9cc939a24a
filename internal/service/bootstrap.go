package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/parser"
	"github.com/yasinhessnawi1/jcadmin/internal/patternlist"
	"github.com/yasinhessnawi1/jcadmin/internal/repository"
)

// Bootstrapper loads the name database, creating it on first run from the
// names already present in the jcblock files.
type Bootstrapper struct {
	callLog repository.TextFile
	safe    repository.TextFile
	blocked repository.TextFile
	names   repository.NameRepository
}

// NewBootstrapper creates a Bootstrapper.
func NewBootstrapper(callLog, safe, blocked repository.TextFile, names repository.NameRepository) *Bootstrapper {
	return &Bootstrapper{
		callLog: callLog,
		safe:    safe,
		blocked: blocked,
		names:   names,
	}
}

// Run loads the name database if it exists. Otherwise it replays the call
// log, then the blocked list, then the safe list, so a later source overrides
// an earlier one and the safe list wins, and writes the result.
//
// It reports whether a new database was created. Any error here should stop
// the process.
func (b *Bootstrapper) Run(ctx context.Context) (bool, error) {
	exists, err := b.names.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load name database: %w", err)
	}
	if exists {
		return false, nil
	}

	log.Info().Str(constants.LogFieldFile, b.names.File().Path()).Msg("Name database not found, creating it")
	startTime := time.Now()

	names := make(map[string]string)

	text, err := b.callLog.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read call log: %w", err)
	}
	replayCallLog(names, text)

	for _, list := range []repository.TextFile{b.blocked, b.safe} {
		text, err := list.Read(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to read pattern list: %w", err)
		}
		replayPatternList(names, text)
	}

	if err := b.names.Replace(ctx, names); err != nil {
		return false, fmt.Errorf("failed to write name database: %w", err)
	}

	log.Info().
		Str("event", constants.LogEventBootstrap).
		Int("names", len(names)).
		Dur("duration", time.Since(startTime)).
		Msg("Name database created")

	return true, nil
}

func replayCallLog(names map[string]string, text string) {
	for _, line := range parser.SplitLines(text) {
		call, ok := parser.ParseCallLogLine(line)
		if ok && call.CallerID != "" && parser.IsPhoneNumber(call.Number) {
			names[call.Number] = call.CallerID
		}
	}
}

func replayPatternList(names map[string]string, text string) {
	for _, record := range patternlist.Records(text) {
		if record.Comment != "" && parser.IsPhoneNumber(record.Pattern) {
			names[record.Pattern] = record.Comment
		}
	}
}
