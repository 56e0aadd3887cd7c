package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/vetboard/internal/http/v2/errors"
	"github.com/dropDatabas3/vetboard/internal/http/v2/render"
	svc "github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
)

// CallbackController maneja el retorno del provider. Siempre responde con un
// documento HTML: éxito, conflicto o error. Las fallas del flujo nunca salen
// como JSON ni como 5xx crudo.
type CallbackController struct {
	service  svc.CallbackService
	renderer *render.Renderer
}

func NewCallbackController(service svc.CallbackService, renderer *render.Renderer) *CallbackController {
	return &CallbackController{service: service, renderer: renderer}
}

// Callback maneja GET /v2/auth/social/{provider}/callback?code&state&error
func (c *CallbackController) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CallbackController.Callback"))

	q := r.URL.Query()
	result, err := c.service.Callback(ctx, svc.CallbackRequest{
		Provider:         chi.URLParam(r, "provider"),
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	})

	if err != nil {
		fe, ok := svc.AsFlowError(err)
		if !ok {
			httperrors.WriteError(w, r, httperrors.ErrInternalServerError.WithCause(err))
			return
		}
		if rerr := c.renderer.Error(w, fe); rerr != nil {
			log.Error("render error document", logger.Err(rerr))
			httperrors.WriteError(w, r, httperrors.ErrInternalServerError.WithCause(rerr))
		}
		return
	}

	if rerr := c.renderer.Result(w, result); rerr != nil {
		log.Error("render result document", logger.Err(rerr))
		httperrors.WriteError(w, r, httperrors.ErrInternalServerError.WithCause(rerr))
	}
}
