// Package social contiene los controllers HTTP del login social.
package social

import (
	"github.com/dropDatabas3/vetboard/internal/http/v2/render"
	svc "github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
)

// Controllers agrupa los controllers del dominio social.
type Controllers struct {
	Start    *StartController
	Callback *CallbackController
}

func NewControllers(s svc.Services, renderer *render.Renderer) *Controllers {
	return &Controllers{
		Start:    NewStartController(s.Start),
		Callback: NewCallbackController(s.Callback, renderer),
	}
}
