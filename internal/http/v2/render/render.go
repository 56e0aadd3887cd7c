// Package render genera los documentos HTML que devuelve el callback social:
// éxito, conflicto de cuenta y error. Cada documento trae un script con nonce
// que entrega el resultado al opener (postMessage same-origin) o, sin opener,
// guarda la sesión localmente y navega al destino.
package render

import (
	"bytes"
	"crypto/rand"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	dto "github.com/dropDatabas3/vetboard/internal/http/v2/dto/social"
	svc "github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configura la entrega. Los ceros toman defaults.
type Options struct {
	AppName              string
	GraceDelay           time.Duration // postMessage -> window.close()
	DismissAfter         time.Duration // cuenta regresiva de conflicto/error
	AccountSelectionPath string        // destino neutral del conflicto sin opener
	LandingPath          string        // destino neutral del error sin opener
	CookieName           string
	CookieMaxAge         time.Duration
	SecureCookie         bool // false sólo en dev
	// RetryURL arma la URL para reintentar desde cero con el provider,
	// conservando la categoría y el modo popup del intento (si se conocen).
	RetryURL func(provider string, cat category.Category, popup bool) string
}

func (o *Options) defaults() {
	if o.AppName == "" {
		o.AppName = "vetboard"
	}
	if o.GraceDelay < 0 {
		o.GraceDelay = 0
	}
	if o.DismissAfter <= 0 {
		o.DismissAfter = 5 * time.Second
	}
	if o.AccountSelectionPath == "" {
		o.AccountSelectionPath = "/login"
	}
	if o.LandingPath == "" {
		o.LandingPath = "/"
	}
	if o.CookieName == "" {
		o.CookieName = "accessToken"
	}
	if o.CookieMaxAge <= 0 {
		o.CookieMaxAge = 7 * 24 * time.Hour
	}
}

// Renderer escribe los documentos del callback.
type Renderer struct {
	opts Options
	tpl  *template.Template
}

func New(opts Options) (*Renderer, error) {
	opts.defaults()
	tpl, err := template.New("document.html").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Renderer{opts: opts, tpl: tpl}, nil
}

// Result escribe el documento de éxito o de conflicto según el outcome.
func (r *Renderer) Result(w http.ResponseWriter, res *svc.CallbackResult) error {
	if res.Outcome == svc.OutcomeAccountConflict {
		return r.write(w, http.StatusConflict, r.conflictDocument(res))
	}
	return r.write(w, http.StatusOK, r.successDocument(res))
}

// Error escribe el documento de error.
func (r *Renderer) Error(w http.ResponseWriter, fe *svc.FlowError) error {
	return r.write(w, statusFor(fe), r.errorDocument(fe))
}

func statusFor(fe *svc.FlowError) int {
	switch fe.Kind {
	case svc.KindStateInvalid:
		if fe.Code == svc.CodeProviderUnknown {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case svc.KindConsentCancelled:
		return http.StatusOK
	case svc.KindTokenExchangeFailed, svc.KindProfileFetchFailed:
		if fe.Retryable {
			return http.StatusBadGateway
		}
		return http.StatusUnprocessableEntity
	case svc.KindResolutionFailed:
		return http.StatusInternalServerError
	case svc.KindAccountConflict:
		return http.StatusConflict
	case svc.KindUnknown:
	}
	return http.StatusInternalServerError
}

func (r *Renderer) write(w http.ResponseWriter, status int, doc *document) error {
	nonce, err := newNonce()
	if err != nil {
		return fmt.Errorf("render: nonce: %w", err)
	}
	doc.Nonce = nonce
	doc.AppName = r.opts.AppName
	doc.Script.Transitions = Transitions()

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "document.html", doc); err != nil {
		return fmt.Errorf("render: execute: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Content-Security-Policy", csp(nonce))
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

func csp(nonce string) string {
	return "default-src 'none'; " +
		"style-src 'nonce-" + nonce + "'; " +
		"script-src 'nonce-" + nonce + "'; " +
		"img-src 'self' data:; " +
		"base-uri 'none'; " +
		"form-action 'none'; " +
		"frame-ancestors 'none'"
}

func newNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ─── datos de la vista ───

type documentKind string

const (
	kindSuccess  documentKind = "success"
	kindConflict documentKind = "conflict"
	kindError    documentKind = "error"
)

// document es la entrada del template. Todo valor de usuario pasa por el
// escape contextual de html/template; Script se serializa como valor JS.
type document struct {
	Kind    documentKind
	Nonce   string
	AppName string
	Title   string
	Heading string
	Lead    string

	// conflicto
	HasPassword     bool
	LinkedProviders []string
	Attempted       string

	// error
	Code          string
	CorrelationID string
	Retryable     bool

	Countdown int
	Script    scriptData
}

type scriptData struct {
	Kind            documentKind                      `json:"kind"`
	Message         dto.Message                       `json:"message"`
	Redirect        string                            `json:"redirect,omitempty"`
	Fallback        string                            `json:"fallback,omitempty"`
	RetryURL        string                            `json:"retryUrl,omitempty"`
	RetryMessage    *dto.Message                      `json:"retryMessage,omitempty"`
	GraceDelayMs    int64                             `json:"graceDelayMs"`
	DismissAfterSec int                               `json:"dismissAfterSec"`
	Storage         *storageData                      `json:"storage,omitempty"`
	Cookie          cookieData                        `json:"cookie"`
	Transitions     map[DeliveryState][]DeliveryState `json:"transitions"`
}

// storageData son las claves de localStorage del bootstrap sin opener.
type storageData struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         dto.UserSummary `json:"user"`
}

type cookieData struct {
	Name   string `json:"name"`
	MaxAge int64  `json:"maxAge"`
	Secure bool   `json:"secure"`
}

func (r *Renderer) base(kind documentKind) *document {
	secs := int((r.opts.DismissAfter + time.Second - 1) / time.Second)
	return &document{
		Kind:      kind,
		Countdown: secs,
		Script: scriptData{
			Kind:            kind,
			GraceDelayMs:    r.opts.GraceDelay.Milliseconds(),
			DismissAfterSec: secs,
			Cookie: cookieData{
				Name:   r.opts.CookieName,
				MaxAge: int64(r.opts.CookieMaxAge / time.Second),
				Secure: r.opts.SecureCookie,
			},
		},
	}
}
