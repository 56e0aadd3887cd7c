package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
)

// StartRequest es la entrada de GET /v2/auth/social/{provider}/start.
type StartRequest struct {
	Provider string
	Category string // vacío = veterinarian
	Popup    bool
}

// StartResult contiene la URL de consentimiento del provider.
type StartResult struct {
	RedirectURL string
	State       *State
}

// StartService arma la redirección al provider con un state firmado.
type StartService interface {
	Start(ctx context.Context, req StartRequest) (*StartResult, error)
}

var (
	ErrStartProviderUnknown = errors.New("provider not enabled")
	ErrStartCategoryInvalid = errors.New("invalid category")
)

type startService struct {
	providers *providers.Registry
	state     StateCodec
}

// StartDeps contiene las dependencias del StartService.
type StartDeps struct {
	Providers *providers.Registry
	State     StateCodec
}

func NewStartService(d StartDeps) StartService {
	return &startService{providers: d.Providers, state: d.State}
}

func (s *startService) Start(ctx context.Context, req StartRequest) (*StartResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.start"))

	name := strings.ToLower(strings.TrimSpace(req.Provider))
	p, ok := s.providers.Get(name)
	if !ok {
		return nil, ErrStartProviderUnknown
	}

	cat := category.Veterinarian
	if strings.TrimSpace(req.Category) != "" {
		var err error
		if cat, err = category.Parse(req.Category); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrStartCategoryInvalid, req.Category)
		}
	}

	token, st, err := s.state.Sign(name, cat, req.Popup)
	if err != nil {
		return nil, err
	}

	log.Debug("social start", logger.Provider(name), logger.Category(cat.String()))
	return &StartResult{RedirectURL: p.AuthorizeURL(token), State: st}, nil
}
