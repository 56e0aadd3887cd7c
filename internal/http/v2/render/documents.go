package render

import (
	"strings"
	"time"

	dto "github.com/dropDatabas3/vetboard/internal/http/v2/dto/social"
	svc "github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
)

var providerLabels = map[string]string{
	"google": "Google",
	"kakao":  "카카오",
	"naver":  "네이버",
}

func providerLabel(p string) string {
	if l, ok := providerLabels[strings.ToLower(p)]; ok {
		return l
	}
	return p
}

// SuccessMessage arma el LOGIN_SUCCESS de un LINKED_LOGIN o NEW_USER.
func SuccessMessage(res *svc.CallbackResult) dto.Message {
	p := dto.SuccessPayload{
		IsProfileComplete: res.Complete,
		Redirect:          res.Destination.URL(),
	}
	if res.Account != nil {
		p.User = userSummary(res)
	}
	if res.Tokens != nil {
		p.Tokens = &dto.Tokens{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
			TokenType:    res.Tokens.TokenType,
			ExpiresIn:    secondsUntil(res.Tokens.AccessExpiresAt),
		}
	}
	if res.Pending != nil && !res.Complete {
		p.PendingProfile = &dto.PendingProfile{
			Email:         res.Pending.Email,
			Name:          res.Pending.Name,
			Avatar:        res.Pending.Avatar,
			Provider:      res.Pending.Provider,
			ProviderID:    res.Pending.ProviderID,
			Phone:         res.Pending.Phone,
			BirthDate:     res.Pending.BirthDate,
			EmailVerified: res.Pending.EmailVerified,
		}
	}
	return dto.Success(p)
}

// ErrorMessage arma el LOGIN_ERROR de una falla del flujo.
func ErrorMessage(fe *svc.FlowError) dto.Message {
	return dto.Error(fe.Code, userMessage(fe))
}

// ConflictMessage arma el LOGIN_ERROR que recibe el opener en un conflicto.
func ConflictMessage() dto.Message {
	return dto.Error(svc.CodeAccountConflict, conflictText)
}

const conflictText = "이미 같은 이메일로 가입된 계정이 있습니다. 기존 로그인 방법으로 로그인해 주세요."

func userMessage(fe *svc.FlowError) string {
	msg := fe.Message()
	if fe.CorrelationID != "" {
		msg += " (오류 코드: " + fe.CorrelationID + ")"
	}
	return msg
}

func userSummary(res *svc.CallbackResult) *dto.UserSummary {
	return &dto.UserSummary{
		ID:       res.Account.ID,
		Email:    res.Account.Email,
		Name:     res.Account.Name,
		Category: res.Account.Category.String(),
	}
}

func secondsUntil(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	if d := time.Until(t); d > 0 {
		return int64(d / time.Second)
	}
	return 0
}

func (r *Renderer) successDocument(res *svc.CallbackResult) *document {
	doc := r.base(kindSuccess)
	doc.Title = "로그인 완료"
	doc.Heading = "로그인되었습니다"
	doc.Lead = "잠시 후 이동합니다."
	if res.Outcome == svc.OutcomeNewUser || !res.Complete {
		doc.Heading = "회원 정보를 입력해 주세요"
		doc.Lead = "가입을 마치기 위해 추가 정보 입력 화면으로 이동합니다."
	}

	doc.Script.Message = SuccessMessage(res)
	doc.Script.Redirect = res.Destination.URL()
	if doc.Script.Redirect == "" {
		doc.Script.Redirect = r.opts.LandingPath
	}
	if res.Tokens != nil && res.Account != nil {
		doc.Script.Storage = &storageData{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
			User:         *userSummary(res),
		}
	}
	return doc
}

// conflictDocument dice que la cuenta existe y con qué métodos entrar.
// No muestra email ni nombre de la cuenta existente.
func (r *Renderer) conflictDocument(res *svc.CallbackResult) *document {
	doc := r.base(kindConflict)
	doc.Title = "이미 가입된 계정"
	doc.Heading = "이미 가입된 계정이 있습니다"
	doc.Lead = conflictText
	if c := res.Conflict; c != nil {
		doc.HasPassword = c.HasPassword
		for _, p := range c.LinkedProviders {
			doc.LinkedProviders = append(doc.LinkedProviders, providerLabel(p))
		}
		doc.Attempted = providerLabel(c.AttemptedProvider)
	}
	doc.Script.Message = ConflictMessage()
	doc.Script.Fallback = r.opts.AccountSelectionPath
	return doc
}

func (r *Renderer) errorDocument(fe *svc.FlowError) *document {
	doc := r.base(kindError)
	doc.Title = "로그인 오류"
	doc.Heading = "로그인하지 못했습니다"
	doc.Lead = fe.Message()
	doc.Code = fe.Code
	doc.CorrelationID = fe.CorrelationID
	doc.Retryable = fe.Retryable && fe.Provider != "" && fe.Code != svc.CodeProviderUnknown

	doc.Script.Message = ErrorMessage(fe)
	doc.Script.Fallback = r.opts.LandingPath
	if doc.Retryable {
		retry := dto.Retry(fe.Provider)
		doc.Script.RetryMessage = &retry
		if r.opts.RetryURL != nil {
			doc.Script.RetryURL = r.opts.RetryURL(fe.Provider, fe.Category, fe.Popup)
		}
	}
	return doc
}
