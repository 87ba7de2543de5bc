package listresetrequests

import (
	"net/http"
	"time"

	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/core/services"
	service "passwordreset/internal/core/services/list_reset_requests"
	"passwordreset/internal/http/handlers/response"

	"github.com/golang-module/carbon/v2"
)

// Handler exposes the outstanding reset requests for diagnostics.
// Tokens themselves are never part of the listing.
type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type ResultRequest struct {
	Username      string    `json:"username"`
	SourceAddress string    `json:"sourceAddress"`
	ExpiresAt     time.Time `json:"expiresAt"`
	ExpiresIn     string    `json:"expiresIn"`
}

type Result struct {
	Requests []ResultRequest `json:"requests"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	requests := make([]ResultRequest, 0, len(result.Requests))
	for _, req := range result.Requests {
		requests = append(requests, ResultRequest{
			Username:      string(req.Username),
			SourceAddress: req.SourceAddress,
			ExpiresAt:     req.ExpiresAt,
			ExpiresIn:     carbon.Time2Carbon(req.ExpiresAt).DiffForHumans(),
		})
	}
	response.Render(rw, Result{Requests: requests}, http.StatusOK)
}
