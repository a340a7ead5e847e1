package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/portalbd/employee-portal-go/internal/domain/profile"
	"github.com/portalbd/employee-portal-go/internal/handler/http/middleware"
	"github.com/portalbd/employee-portal-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Setup(w http.ResponseWriter, r *http.Request)
	SalaryBreakdown(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}

// Get implements ProfileHandler. A user without a profile row gets an
// incomplete marker, not an error.
func (p *ProfileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	prof, err := p.profileService.Get(r.Context(), userID)
	if err != nil {
		slog.Error("Profile get service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"profile": prof})
}

// Setup implements ProfileHandler.
func (p *ProfileHandlerImpl) Setup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var setupReq profile.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&setupReq); err != nil {
		slog.Error("Profile setup decode error", "error", err)
		response.Fail(w, "Invalid request format")
		return
	}

	if err := p.profileService.Setup(r.Context(), userID, setupReq); err != nil {
		slog.Error("Profile setup service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Message(w, "Profile saved")
}

// SalaryBreakdown implements ProfileHandler. It decomposes ?gross= into the
// standard component structure without touching any stored profile.
func (p *ProfileHandlerImpl) SalaryBreakdown(w http.ResponseWriter, r *http.Request) {
	gross, err := strconv.ParseFloat(r.URL.Query().Get("gross"), 64)
	if err != nil {
		response.Fail(w, "Invalid gross salary")
		return
	}

	breakdown, err := profile.BreakdownGross(gross)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"breakdown": breakdown})
}
