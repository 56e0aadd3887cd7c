package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// ─── HTTP ───

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field { return zap.String("user_agent", v) }

// DurationMs registra la duración en milisegundos.
func DurationMs(d time.Duration) zap.Field { return zap.Int64("duration_ms", d.Milliseconds()) }

// ─── Login social ───

// Provider es el identity provider (google, kakao, naver).
func Provider(v string) zap.Field { return zap.String("provider", v) }

// Category es la categoría de miembro solicitada o la de la cuenta.
func Category(v string) zap.Field { return zap.String("category", v) }

// Outcome es el resultado de la resolución (LINKED_LOGIN, ACCOUNT_CONFLICT, NEW_USER).
func Outcome(v string) zap.Field { return zap.String("outcome", v) }

// ErrorCode es el código de máquina de un error del flujo.
func ErrorCode(v string) zap.Field { return zap.String("error_code", v) }

// CorrelationID vincula el mensaje mostrado al usuario con el log del servidor.
func CorrelationID(v string) zap.Field { return zap.String("correlation_id", v) }

func UserID(v string) zap.Field { return zap.String("user_id", v) }

// MaskedEmail loguea el email enmascarado: "kim@example.com" -> "k**@example.com".
func MaskedEmail(v string) zap.Field { return zap.String("email", MaskEmail(v)) }

// MaskEmail conserva el primer carácter del local-part y el dominio.
func MaskEmail(v string) string {
	at := strings.LastIndexByte(v, '@')
	if at <= 0 {
		if v == "" {
			return ""
		}
		return "***"
	}
	local := []rune(v[:at])
	return string(local[0]) + strings.Repeat("*", max(len(local)-1, 2)) + v[at:]
}

// ─── Sistema ───

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

// Any para valores sin helper propio (p.ej. el valor de un panic).
func Any(k string, v any) zap.Field { return zap.Any(k, v) }
