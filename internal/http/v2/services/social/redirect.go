package social

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
)

// Route son los destinos de una categoría.
type Route struct {
	Dashboard  string
	Completion string
}

// RouteTable mapea cada categoría a sus destinos. Se construye una vez al
// inicio y garantiza que toda categoría tenga ambos paths.
type RouteTable struct {
	routes map[category.Category]Route
}

// NewRouteTable valida la tabla de configuración (clave = nombre de categoría).
// Falla si falta una categoría, si sobra una clave desconocida o si algún
// path no es absoluto.
func NewRouteTable(cfg map[string]Route) (*RouteTable, error) {
	t := &RouteTable{routes: make(map[category.Category]Route, len(cfg))}
	var errs []error
	for key, r := range cfg {
		cat, err := category.Parse(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("routes: unknown category %q", key))
			continue
		}
		if _, dup := t.routes[cat]; dup {
			errs = append(errs, fmt.Errorf("routes: category %s configured twice", cat))
			continue
		}
		if !strings.HasPrefix(r.Dashboard, "/") {
			errs = append(errs, fmt.Errorf("routes: %s dashboard path %q must start with /", cat, r.Dashboard))
		}
		if !strings.HasPrefix(r.Completion, "/") {
			errs = append(errs, fmt.Errorf("routes: %s completion path %q must start with /", cat, r.Completion))
		}
		t.routes[cat] = r
	}
	for _, cat := range category.All() {
		if _, ok := t.routes[cat]; !ok {
			errs = append(errs, fmt.Errorf("routes: category %s has no destinations", cat))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Route retorna los destinos de la categoría.
func (t *RouteTable) Route(cat category.Category) (Route, bool) {
	r, ok := t.routes[cat]
	return r, ok
}

// PendingProfile son los datos que viajan en la query de registro.
type PendingProfile struct {
	Email      string
	Name       string
	Avatar     string
	Provider   string
	ProviderID string
	Phone      string
	BirthDate  string
	// EmailVerified viaja en el payload, no en la query de registro.
	EmailVerified bool
}

// PendingFromIdentity arma el PendingProfile de una identidad.
func PendingFromIdentity(id Identity) PendingProfile {
	return PendingProfile{
		Email:         id.Email,
		Name:          id.DisplayName,
		Avatar:        id.AvatarURL,
		Provider:      id.Provider,
		ProviderID:    id.ProviderID,
		Phone:         id.Phone,
		BirthDate:     id.BirthDate,
		EmailVerified: id.EmailVerified,
	}
}

// Query serializa sólo los campos presentes. Un campo vacío no genera clave.
func (p PendingProfile) Query() url.Values {
	q := url.Values{}
	for _, kv := range [...]struct{ k, v string }{
		{"email", p.Email},
		{"name", p.Name},
		{"avatar", p.Avatar},
		{"provider", p.Provider},
		{"providerId", p.ProviderID},
		{"phone", p.Phone},
		{"birthDate", p.BirthDate},
	} {
		if v := strings.TrimSpace(kv.v); v != "" {
			q.Set(kv.k, v)
		}
	}
	return q
}

// PlanInput es la entrada del planner.
type PlanInput struct {
	Outcome  Outcome
	Complete bool
	Category category.Category
	Pending  PendingProfile
}

// Destination es el destino planificado. ACCOUNT_CONFLICT no tiene destino.
type Destination struct {
	Path           string
	Query          url.Values
	HasDestination bool
}

// URL arma path + query. "" si no hay destino.
func (d Destination) URL() string {
	if !d.HasDestination {
		return ""
	}
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}

// Plan es puro: no hace I/O.
func (t *RouteTable) Plan(in PlanInput) (Destination, error) {
	if in.Outcome == OutcomeAccountConflict {
		return Destination{}, nil
	}
	r, ok := t.Route(in.Category)
	if !ok {
		return Destination{}, fmt.Errorf("plan: no routes for category %s", in.Category)
	}

	switch in.Outcome {
	case OutcomeLinkedLogin:
		if in.Complete {
			return Destination{Path: r.Dashboard, HasDestination: true}, nil
		}
		return Destination{Path: r.Completion, Query: in.Pending.Query(), HasDestination: true}, nil
	case OutcomeNewUser:
		return Destination{Path: r.Completion, Query: in.Pending.Query(), HasDestination: true}, nil
	case OutcomeAccountConflict:
	}
	return Destination{}, fmt.Errorf("plan: unknown outcome %s", in.Outcome)
}
