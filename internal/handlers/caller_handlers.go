package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

// CallerHandler handles the call log, caller and pattern list routes
type CallerHandler struct {
	callerService CallerServiceInterface
	version       models.VersionInfo
}

// NewCallerHandler creates a new CallerHandler
func NewCallerHandler(callerService CallerServiceInterface, version models.VersionInfo) *CallerHandler {
	return &CallerHandler{
		callerService: callerService,
		version:       version,
	}
}

// Poll returns the modification times clients compare to decide what to reload
func (h *CallerHandler) Poll(w http.ResponseWriter, r *http.Request) {
	times, err := h.callerService.PollModificationTimes(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, models.NewPollResponse(times))
}

// GetRecentCalls returns a window of the call log. Missing start and limit
// parameters default to the newest call and the configured window size.
func (h *CallerHandler) GetRecentCalls(w http.ResponseWriter, r *http.Request) {
	start, err := utils.ParseNonNegativeInt(constants.ParamStart, param(r, constants.ParamStart), 0)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	limit, err := utils.ParseNonNegativeInt(constants.ParamLimit, param(r, constants.ParamLimit), h.callerService.DefaultCallLimit())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	recent, err := h.callerService.GetRecentCalls(r.Context(), start, limit)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, recent)
}

// GetCaller returns the most recent call and call history of one number
func (h *CallerHandler) GetCaller(w http.ResponseWriter, r *http.Request) {
	detail, err := h.callerService.GetCallerDetail(r.Context(), param(r, constants.ParamPhoneNumber))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, detail)
}

// DeleteCaller removes a number that has never called
func (h *CallerHandler) DeleteCaller(w http.ResponseWriter, r *http.Request) {
	if err := h.callerService.DeleteCaller(r.Context(), param(r, constants.ParamPhoneNumber)); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, models.DeleteResponse{Deleted: true})
}

// UpdateCaller renames a number from a JSON body of the form {"name": "..."}
func (h *CallerHandler) UpdateCaller(w http.ResponseWriter, r *http.Request) {
	var req models.RenameRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	req.Number = param(r, constants.ParamPhoneNumber)
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.rename(w, r, req.Number, req.Name)
}

// Rename sets the display name from the route. Without a name segment the
// name is cleared.
func (h *CallerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	h.rename(w, r, param(r, constants.ParamPhoneNumber), param(r, constants.ParamName))
}

func (h *CallerHandler) rename(w http.ResponseWriter, r *http.Request, number, name string) {
	if err := h.callerService.RenameCaller(r.Context(), number, name); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Same reply whether or not the name changed
	utils.JSON(w, constants.StatusOK, models.RenameResponse{Status: "OK"})
}

// FetchList returns the pattern table of the safe or blocked list
func (h *CallerHandler) FetchList(w http.ResponseWriter, r *http.Request) {
	list, ok := listParam(w, r)
	if !ok {
		return
	}

	table, err := h.callerService.FetchPatternTable(r.Context(), list)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, table)
}

// FetchListDetail returns the records of the safe or blocked list in file order
func (h *CallerHandler) FetchListDetail(w http.ResponseWriter, r *http.Request) {
	list, ok := listParam(w, r)
	if !ok {
		return
	}

	detail, err := h.callerService.FetchPatternDetail(r.Context(), list)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, detail)
}

// Classify moves a number to the status named in the route
func (h *CallerHandler) Classify(w http.ResponseWriter, r *http.Request) {
	h.classify(w, r, param(r, constants.ParamStatus), param(r, constants.ParamPhoneNumber))
}

// ClassifyBody moves a number to a status given as {"number": "...", "status": "..."}
func (h *CallerHandler) ClassifyBody(w http.ResponseWriter, r *http.Request) {
	var req models.ClassifyRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.classify(w, r, req.Status, req.Number)
}

func (h *CallerHandler) classify(w http.ResponseWriter, r *http.Request, status, number string) {
	result, err := h.callerService.Classify(r.Context(), status, number)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, result)
}

// HealthCheck reports whether the jcblock files are reachable. It answers 503
// when any of them is not.
func (h *CallerHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.callerService.CheckHealth(r.Context())
	if health.Status != constants.HealthOK {
		utils.JSON(w, constants.StatusServiceUnavailable, health)
		return
	}

	utils.JSON(w, constants.StatusOK, health)
}

// Version reports the build name, version and environment
func (h *CallerHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.version)
}

// param returns a route parameter, unescaped.
func param(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func listParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	list := param(r, constants.ParamFileType)
	if list != constants.ListSafe && list != constants.ListBlocked {
		utils.BadRequest(w, constants.MsgInvalidFileType, map[string]string{
			constants.ParamFileType: list,
		})
		return "", false
	}
	return list, true
}
