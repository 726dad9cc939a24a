// Package handlers provides HTTP request handlers for the jcadmin API.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/jcadmin/internal/models"
)

// CallerServiceInterface defines methods required from the caller service.
// The caller handlers use it to reach the jcblock files without depending on
// how the files are read or cached.
type CallerServiceInterface interface {
	// DefaultCallLimit is the window size used when a request names none.
	DefaultCallLimit() int

	// GetRecentCalls returns calls [start, start+limit) of the call log, newest first.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - start: Position of the first call, counting from the newest
	//   - limit: Maximum number of calls returned
	//
	// Returns:
	//   - The call window with per-number statistics
	//   - An error if the call log cannot be read
	GetRecentCalls(ctx context.Context, start, limit int) (*models.RecentCalls, error)

	// GetCallerDetail returns everything known about one number.
	GetCallerDetail(ctx context.Context, number string) (*models.CallerDetail, error)

	// DeleteCaller removes a number that has never called from both lists and the name database.
	DeleteCaller(ctx context.Context, number string) error

	// FetchPatternTable maps each pattern of the safe or blocked list to its comment.
	FetchPatternTable(ctx context.Context, list string) (*models.PatternTable, error)

	// FetchPatternDetail lists the records of the safe or blocked list in file order.
	FetchPatternDetail(ctx context.Context, list string) (*models.PatternTableDetail, error)

	// RenameCaller sets or clears the display name of a number.
	RenameCaller(ctx context.Context, number, name string) error

	// Classify moves a number to a status.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - status: safe, blocked or neutral
	//   - number: The phone number to move
	//
	// Returns:
	//   - The status the device will now apply to the number
	//   - An error if validation or a file step fails
	Classify(ctx context.Context, status, number string) (*models.ClassifyResponse, error)

	// PollModificationTimes returns the last-modified time of every file.
	PollModificationTimes(ctx context.Context) (*models.ModificationTimes, error)

	// CheckHealth reports whether every file can be reached.
	CheckHealth(ctx context.Context) *models.HealthStatus
}
