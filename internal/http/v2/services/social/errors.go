package social

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
)

// Kind clasifica las fallas del flujo de login social.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConsentCancelled
	KindTokenExchangeFailed
	KindProfileFetchFailed
	KindStateInvalid
	KindAccountConflict
	KindResolutionFailed
)

func (k Kind) String() string {
	switch k {
	case KindConsentCancelled:
		return "ConsentCancelled"
	case KindTokenExchangeFailed:
		return "TokenExchangeFailed"
	case KindProfileFetchFailed:
		return "ProfileFetchFailed"
	case KindStateInvalid:
		return "StateInvalid"
	case KindAccountConflict:
		return "AccountConflict"
	case KindResolutionFailed:
		return "ResolutionFailed"
	}
	return "Unknown"
}

// Códigos de máquina expuestos en el documento de error y en LOGIN_ERROR.
const (
	CodeConsentCancelled         = "consent_cancelled"
	CodeTokenExchangeFailed      = "token_exchange_failed"
	CodeProfileFetchFailed       = "profile_fetch_failed"
	CodeProfileIncompleteConsent = "profile_incomplete_consent"
	CodeStateInvalid             = "state_invalid"
	CodeAccountConflict          = "account_conflict"
	CodeResolutionFailed         = "resolution_failed"
	CodeProviderUnknown          = "provider_unknown"
)

// FlowError es una falla del flujo ya clasificada. Nunca se propaga como
// pánico ni como 5xx: el controller la renderiza como documento de error.
type FlowError struct {
	Kind      Kind
	Code      string
	Retryable bool
	Provider  string
	// CorrelationID sólo se setea en ResolutionFailed; vincula el mensaje
	// mostrado con el log del servidor.
	CorrelationID string
	// Category y Popup salen del state ya verificado; Unknown si no se llegó.
	Category category.Category
	Popup    bool
	Err      error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("social %s (%s): %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("social %s (%s)", e.Kind, e.Code)
}

func (e *FlowError) Unwrap() error { return e.Err }

// Message es el texto para el usuario. ResolutionFailed nunca expone la causa.
func (e *FlowError) Message() string {
	switch e.Code {
	case CodeConsentCancelled:
		return "로그인이 취소되었습니다. 다시 시도해 주세요."
	case CodeTokenExchangeFailed:
		return "로그인 제공자와 통신하지 못했습니다. 잠시 후 다시 시도해 주세요."
	case CodeProfileFetchFailed:
		if e.Retryable {
			return "프로필 정보를 가져오지 못했습니다. 잠시 후 다시 시도해 주세요."
		}
		return "로그인 제공자가 필요한 프로필 정보를 제공하지 않았습니다."
	case CodeProfileIncompleteConsent:
		return "이메일 제공에 동의해야 로그인할 수 있습니다. 동의 항목을 확인해 주세요."
	case CodeStateInvalid:
		return "로그인 요청이 만료되었거나 올바르지 않습니다. 처음부터 다시 시도해 주세요."
	case CodeProviderUnknown:
		return "지원하지 않는 로그인 방식입니다."
	case CodeResolutionFailed:
		return "로그인 처리 중 오류가 발생했습니다. 문제가 계속되면 오류 코드와 함께 문의해 주세요."
	}
	return "알 수 없는 오류가 발생했습니다."
}

// AsFlowError extrae un *FlowError de la cadena.
func AsFlowError(err error) (*FlowError, bool) {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func errConsentCancelled(provider string, err error) *FlowError {
	return &FlowError{Kind: KindConsentCancelled, Code: CodeConsentCancelled, Retryable: true, Provider: provider, Err: err}
}

func errTokenExchange(provider string, err error) *FlowError {
	return &FlowError{Kind: KindTokenExchangeFailed, Code: CodeTokenExchangeFailed, Retryable: true, Provider: provider, Err: err}
}

// errProfileFetch: transporte = reintentable; campo faltante = terminal.
func errProfileFetch(provider, code string, retryable bool, err error) *FlowError {
	return &FlowError{Kind: KindProfileFetchFailed, Code: code, Retryable: retryable, Provider: provider, Err: err}
}

func errStateInvalid(provider, code string, err error) *FlowError {
	return &FlowError{Kind: KindStateInvalid, Code: code, Retryable: false, Provider: provider, Err: err}
}

// errResolution: reintentable salvo que la cuenta vinculada esté inactiva.
func errResolution(provider string, err error) *FlowError {
	return &FlowError{
		Kind:          KindResolutionFailed,
		Code:          CodeResolutionFailed,
		Retryable:     !errors.Is(err, ErrAccountInactive),
		Provider:      provider,
		CorrelationID: uuid.NewString(),
		Err:           err,
	}
}
