package render

// DeliveryState es el estado del script de entrega en la ventana del callback.
//
//	INIT -> HAS_OPENER -> MESSAGE_SENT -> CLOSING
//	INIT -> NO_OPENER  -> SESSION_BOOTSTRAPPED -> REDIRECTED
//
// Los documentos de conflicto y error sin opener van de NO_OPENER directo a
// REDIRECTED (no hay sesión que guardar).
type DeliveryState string

const (
	StateInit                DeliveryState = "INIT"
	StateHasOpener           DeliveryState = "HAS_OPENER"
	StateMessageSent         DeliveryState = "MESSAGE_SENT"
	StateClosing             DeliveryState = "CLOSING"
	StateNoOpener            DeliveryState = "NO_OPENER"
	StateSessionBootstrapped DeliveryState = "SESSION_BOOTSTRAPPED"
	StateRedirected          DeliveryState = "REDIRECTED"
)

var transitions = map[DeliveryState][]DeliveryState{
	StateInit:                {StateHasOpener, StateNoOpener},
	StateHasOpener:           {StateMessageSent},
	StateMessageSent:         {StateClosing},
	StateNoOpener:            {StateSessionBootstrapped, StateRedirected},
	StateSessionBootstrapped: {StateRedirected},
	StateClosing:             nil,
	StateRedirected:          nil,
}

// Terminal reporta si no hay transiciones de salida.
func (s DeliveryState) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reporta si from -> to es válido.
func CanTransition(from, to DeliveryState) bool {
	for _, n := range transitions[from] {
		if n == to {
			return true
		}
	}
	return false
}

// Transitions retorna una copia de la tabla; el script la recibe como dato.
func Transitions() map[DeliveryState][]DeliveryState {
	out := make(map[DeliveryState][]DeliveryState, len(transitions))
	for k, v := range transitions {
		out[k] = append([]DeliveryState{}, v...)
	}
	return out
}
