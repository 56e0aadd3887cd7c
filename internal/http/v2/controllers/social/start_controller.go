package social

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/vetboard/internal/http/v2/errors"
	svc "github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
)

// StartController maneja el inicio del login social.
type StartController struct {
	service svc.StartService
}

func NewStartController(service svc.StartService) *StartController {
	return &StartController{service: service}
}

// Start maneja GET /v2/auth/social/{provider}/start?category=...&popup=1
func (c *StartController) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("StartController.Start"))

	provider := strings.TrimSpace(chi.URLParam(r, "provider"))
	if provider == "" {
		httperrors.WriteError(w, r, httperrors.ErrBadRequest.WithDetail("missing provider"))
		return
	}

	q := r.URL.Query()
	result, err := c.service.Start(ctx, svc.StartRequest{
		Provider: provider,
		Category: q.Get("category"),
		Popup:    isTruthy(q.Get("popup")),
	})
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrStartProviderUnknown):
			log.Warn("start rejected", logger.Provider(provider), logger.Err(err))
			httperrors.WriteError(w, r, httperrors.ErrProviderNotFound)
		case errors.Is(err, svc.ErrStartCategoryInvalid):
			log.Warn("start rejected", logger.Provider(provider), logger.Err(err))
			httperrors.WriteError(w, r, httperrors.ErrInvalidParameter.WithDetail("category"))
		default:
			httperrors.WriteError(w, r, httperrors.ErrInternalServerError.WithCause(err))
		}
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
