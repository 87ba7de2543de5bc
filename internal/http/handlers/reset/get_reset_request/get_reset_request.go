package getresetrequest

import (
	"net/http"

	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/core/services"
	service "passwordreset/internal/core/services/get_account_by_token"
	"passwordreset/internal/http/handlers/response"
)

// Handler resolves a reset token back to the account it was issued
// for, so the change-password form can be prefilled.
type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type ResultAccount struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		response.RenderError(rw, "token is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Token: token.Token(rawToken)})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	if !result.Account.IsPresent {
		response.RenderError(rw, "invalid token", http.StatusUnprocessableEntity)
		return
	}

	a := result.Account.Value
	response.Render(
		rw,
		ResultAccount{Username: string(a.Username), Name: a.Name},
		http.StatusOK,
	)
}
