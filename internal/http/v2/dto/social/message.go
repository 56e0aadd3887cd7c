// Package social define el contrato de mensajes entre la ventana del callback
// y la ventana que abrió el login. El formato es estable: el listener del
// opener depende de él.
package social

// Tipos de mensaje.
const (
	TypeLoginSuccess = "LOGIN_SUCCESS"
	TypeLoginError   = "LOGIN_ERROR"
	TypeLoginRetry   = "LOGIN_RETRY"
)

// Message es lo que viaja por postMessage.
//
//	{type:"LOGIN_SUCCESS", payload:{...}}
//	{type:"LOGIN_ERROR", code, message}
//	{type:"LOGIN_RETRY", provider}
type Message struct {
	Type     string          `json:"type"`
	Payload  *SuccessPayload `json:"payload,omitempty"`
	Code     string          `json:"code,omitempty"`
	Message  string          `json:"message,omitempty"`
	Provider string          `json:"provider,omitempty"`
}

// SuccessPayload: user y tokens sólo existen en LINKED_LOGIN; pendingProfile
// cuando hay que completar el registro.
type SuccessPayload struct {
	User              *UserSummary    `json:"user,omitempty"`
	Tokens            *Tokens         `json:"tokens,omitempty"`
	IsProfileComplete bool            `json:"isProfileComplete"`
	PendingProfile    *PendingProfile `json:"pendingProfile,omitempty"`
	Redirect          string          `json:"redirect,omitempty"`
}

// UserSummary es lo mínimo que el front necesita de la cuenta.
type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Category string `json:"category"`
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"` // segundos
}

// PendingProfile: un campo vacío no se serializa (nunca "undefined" ni "").
type PendingProfile struct {
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Provider      string `json:"provider,omitempty"`
	ProviderID    string `json:"providerId,omitempty"`
	Phone         string `json:"phone,omitempty"`
	BirthDate     string `json:"birthDate,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}

// Success arma un LOGIN_SUCCESS.
func Success(p SuccessPayload) Message {
	return Message{Type: TypeLoginSuccess, Payload: &p}
}

// Error arma un LOGIN_ERROR.
func Error(code, message string) Message {
	return Message{Type: TypeLoginError, Code: code, Message: message}
}

// Retry arma un LOGIN_RETRY.
func Retry(provider string) Message {
	return Message{Type: TypeLoginRetry, Provider: provider}
}
