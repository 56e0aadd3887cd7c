// Package logger expone un logger Zap singleton con scoping por contexto.
//
//   - Init(cfg) una vez en cmd/service; L() para código sin contexto.
//   - Los middlewares inyectan un logger con request_id vía ToContext; los
//     services lo recuperan con From(ctx).
//   - "dev" usa consola con colores, "staging"/"prod" usan JSON.
//
// Los helpers de fields.go fijan los nombres de campo del flujo de login
// social (provider, outcome, correlation_id...). Los emails nunca se loguean
// en claro: usar MaskedEmail.
//
//	log := logger.From(ctx).With(logger.Provider("kakao"))
//	log.Info("social callback resolved", logger.Outcome("LINKED_LOGIN"), logger.UserID(id))
package logger
