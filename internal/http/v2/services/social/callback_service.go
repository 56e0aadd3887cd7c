package social

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
)

// CallbackRequest son los parámetros del callback del provider.
type CallbackRequest struct {
	Provider         string
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackResult es el resultado ya resuelto, listo para renderizar.
type CallbackResult struct {
	Outcome  Outcome
	Provider string
	// Category: la guardada en la cuenta (LINKED_LOGIN) o la solicitada en el state.
	Category category.Category
	Popup    bool

	Account  *repository.Account // LINKED_LOGIN
	Tokens   *TokenPair          // LINKED_LOGIN
	Complete bool                // LINKED_LOGIN
	Pending  *PendingProfile     // NEW_USER o LINKED_LOGIN incompleto
	Conflict *Conflict           // ACCOUNT_CONFLICT

	Destination Destination
}

// CallbackService ejecuta el pipeline secuencial del callback.
// Todo error retornado es *FlowError.
type CallbackService interface {
	Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error)
}

type callbackService struct {
	providers    *providers.Registry
	state        StateCodec
	resolver     IdentityResolver
	completeness CompletenessEvaluator
	sessions     SessionIssuer
	routes       *RouteTable
	timeout      time.Duration
	observer     Observer
}

// CallbackDeps contiene las dependencias del CallbackService.
type CallbackDeps struct {
	Providers       *providers.Registry
	State           StateCodec
	Resolver        IdentityResolver
	Completeness    CompletenessEvaluator
	Sessions        SessionIssuer
	Routes          *RouteTable
	ProviderTimeout time.Duration // por llamada saliente; default 10s
	Observer        Observer      // opcional
}

func NewCallbackService(d CallbackDeps) CallbackService {
	timeout := d.ProviderTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	obs := d.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	return &callbackService{
		providers:    d.Providers,
		state:        d.State,
		resolver:     d.Resolver,
		completeness: d.Completeness,
		sessions:     d.Sessions,
		routes:       d.Routes,
		timeout:      timeout,
		observer:     obs,
	}
}

func (s *callbackService) Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error) {
	name := strings.ToLower(strings.TrimSpace(req.Provider))
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("social.callback"),
		logger.Provider(name),
	)

	res, err := s.run(ctx, name, req)
	if err != nil {
		fe, ok := AsFlowError(err)
		if !ok {
			fe = errResolution(name, err)
		}
		s.observer.Outcome(name, fe.Code)
		if fe.Kind == KindResolutionFailed {
			log.Error("social callback failed",
				logger.ErrorCode(fe.Code),
				logger.CorrelationID(fe.CorrelationID),
				logger.Err(fe.Err),
			)
		} else {
			log.Warn("social callback failed", logger.ErrorCode(fe.Code), logger.Err(fe.Err))
		}
		return nil, fe
	}

	s.observer.Outcome(name, res.Outcome.String())
	log.Info("social callback resolved",
		logger.Outcome(res.Outcome.String()),
		logger.Category(res.Category.String()),
	)
	return res, nil
}

func (s *callbackService) run(ctx context.Context, name string, req CallbackRequest) (*CallbackResult, error) {
	p, ok := s.providers.Get(name)
	if !ok {
		return nil, errStateInvalid(name, CodeProviderUnknown, fmt.Errorf("provider %q not enabled", name))
	}

	// El provider reporta cancelación u otro error antes de emitir un code.
	if e := strings.TrimSpace(req.Error); e != "" {
		cause := fmt.Errorf("provider error %s: %s", e, req.ErrorDescription)
		var fe *FlowError
		if e == "access_denied" || e == "consent_required" {
			fe = errConsentCancelled(name, cause)
		} else {
			fe = errTokenExchange(name, cause)
		}
		// El state igual se consume; si es válido, el reintento conserva la categoría.
		if st, err := s.state.Verify(ctx, strings.TrimSpace(req.State), name); err == nil {
			fe.Category, fe.Popup = st.Category, st.Popup
		}
		return nil, fe
	}

	st, err := s.state.Verify(ctx, strings.TrimSpace(req.State), name)
	switch {
	case errors.Is(err, ErrStateGuard):
		return nil, errResolution(name, err)
	case err != nil:
		return nil, errStateInvalid(name, CodeStateInvalid, err)
	}

	res, err := s.resolve(ctx, name, p, st, req.Code)
	if err != nil {
		fe, ok := AsFlowError(err)
		if !ok {
			fe = errResolution(name, err)
		}
		fe.Category, fe.Popup = st.Category, st.Popup
		return nil, fe
	}
	return res, nil
}

// resolve corre el resto del pipeline con el state ya consumido.
func (s *callbackService) resolve(ctx context.Context, name string, p providers.Provider, st *State, rawCode string) (*CallbackResult, error) {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return nil, errTokenExchange(name, errors.New("authorization code missing"))
	}

	// Llamadas salientes, cada una con timeout propio.
	tok, err := s.exchange(ctx, p, code)
	if err != nil {
		return nil, errTokenExchange(name, err)
	}
	prof, err := s.userInfo(ctx, p, tok.AccessToken)
	if err != nil {
		if errors.Is(err, providers.ErrMissingField) {
			return nil, errProfileFetch(name, CodeProfileFetchFailed, false, err)
		}
		return nil, errProfileFetch(name, CodeProfileFetchFailed, true, err)
	}

	id := IdentityFromProfile(name, prof)
	if id.ProviderID == "" {
		return nil, errProfileFetch(name, CodeProfileFetchFailed, false, errors.New("profile without provider id"))
	}
	if id.Email == "" {
		return nil, errProfileFetch(name, CodeProfileIncompleteConsent, false, errors.New("profile without email"))
	}

	// Desde acá el pipeline termina aunque el usuario cierre la ventana.
	pctx := context.WithoutCancel(ctx)

	resolution, err := s.resolver.Resolve(pctx, id)
	if err != nil {
		return nil, errResolution(name, err)
	}

	res := &CallbackResult{Outcome: resolution.Outcome, Provider: name, Category: st.Category, Popup: st.Popup}

	switch resolution.Outcome {
	case OutcomeLinkedLogin:
		acc := resolution.Account
		res.Account = acc
		res.Category = acc.Category

		tokens, err := s.sessions.IssueSession(pctx, acc)
		if err != nil {
			return nil, errResolution(name, err)
		}
		res.Tokens = tokens

		complete, err := s.completeness.IsProfileComplete(pctx, acc.ID, acc.Category)
		if err != nil {
			return nil, errResolution(name, err)
		}
		res.Complete = complete
		if !complete {
			pending := PendingFromIdentity(id)
			res.Pending = &pending
		}

	case OutcomeAccountConflict:
		res.Conflict = resolution.Conflict
		return res, nil

	case OutcomeNewUser:
		pending := PendingFromIdentity(id)
		res.Pending = &pending

	default:
		return nil, errResolution(name, fmt.Errorf("unexpected outcome %s", resolution.Outcome))
	}

	in := PlanInput{Outcome: res.Outcome, Complete: res.Complete, Category: res.Category}
	if res.Pending != nil {
		in.Pending = *res.Pending
	}
	dest, err := s.routes.Plan(in)
	if err != nil {
		return nil, errResolution(name, err)
	}
	res.Destination = dest
	return res, nil
}

func (s *callbackService) exchange(ctx context.Context, p providers.Provider, code string) (*providers.TokenSet, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()
	tok, err := p.Exchange(cctx, code)
	if err == nil && (tok == nil || tok.AccessToken == "") {
		err = errors.New("empty access token")
	}
	s.observer.ProviderCall(p.Name(), "token", time.Since(start), err)
	return tok, err
}

func (s *callbackService) userInfo(ctx context.Context, p providers.Provider, accessToken string) (*providers.UserProfile, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()
	prof, err := p.UserInfo(cctx, accessToken)
	if err == nil && prof == nil {
		err = errors.New("empty profile")
	}
	s.observer.ProviderCall(p.Name(), "profile", time.Since(start), err)
	return prof, err
}
