package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	svc "github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
)

var nonceAttr = regexp.MustCompile(`nonce="([^"]+)"`)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{
		GraceDelay:   300 * time.Millisecond,
		DismissAfter: 5 * time.Second,
		SecureCookie: true,
		RetryURL: func(p string, cat category.Category, popup bool) string {
			u := "/v2/auth/social/" + p + "/start"
			if cat.Valid() {
				u += "?category=" + cat.String()
			}
			if popup {
				u += "&popup=1"
			}
			return u
		},
	})
	require.NoError(t, err)
	return r
}

func linkedResult(name string) *svc.CallbackResult {
	return &svc.CallbackResult{
		Outcome:  svc.OutcomeLinkedLogin,
		Provider: "kakao",
		Category: category.Hospital,
		Account:  &repository.Account{ID: "u-1", Email: "clinic@example.com", Name: name, Category: category.Hospital},
		Tokens: &svc.TokenPair{
			AccessToken:     "access.jwt",
			RefreshToken:    "refresh.jwt",
			TokenType:       "Bearer",
			AccessExpiresAt: time.Now().Add(15 * time.Minute),
		},
		Complete:    true,
		Destination: svc.Destination{Path: "/dashboard/hospital", HasDestination: true},
	}
}

func TestSuccessDocumentHeadersAndNonce(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()
	require.NoError(t, r.Result(rec, linkedResult("Seoul Clinic")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	m := nonceAttr.FindAllStringSubmatch(body, -1)
	require.Len(t, m, 2, "style + script")
	nonce := m[0][1]
	assert.Equal(t, nonce, m[1][1])
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'nonce-"+nonce+"'")

	assert.Contains(t, body, `"type":"LOGIN_SUCCESS"`)
	assert.Contains(t, body, `"accessToken":"access.jwt"`)
	assert.Contains(t, body, `"redirect":"/dashboard/hospital"`)
	assert.Contains(t, body, "window.location.origin")
	assert.NotContains(t, body, `"*"`)

	// un nonce nuevo por respuesta
	rec2 := httptest.NewRecorder()
	require.NoError(t, r.Result(rec2, linkedResult("Seoul Clinic")))
	assert.NotEqual(t, nonce, nonceAttr.FindStringSubmatch(rec2.Body.String())[1])
}

func TestSuccessDocumentEscapesUserValues(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()
	require.NoError(t, r.Result(rec, linkedResult(`</script><script>alert(1)</script>`)))

	body := rec.Body.String()
	assert.NotContains(t, body, "<script>alert(1)")
	assert.NotContains(t, body, "</script><script>")
}

func TestNewUserHospitalOmitsAvatar(t *testing.T) {
	r := newRenderer(t)
	pending := svc.PendingProfile{Email: "clinic@example.com", Name: "Seoul Clinic", Provider: "kakao", ProviderID: "k-1"}
	res := &svc.CallbackResult{
		Outcome:  svc.OutcomeNewUser,
		Provider: "kakao",
		Category: category.Hospital,
		Pending:  &pending,
		Destination: svc.Destination{
			Path:           "/register/hospital",
			Query:          pending.Query(),
			HasDestination: true,
		},
	}

	doc := r.successDocument(res)
	assert.Nil(t, doc.Script.Storage, "new users have no session to bootstrap")
	b, err := json.Marshal(doc.Script.Message)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "avatar")
	assert.NotContains(t, string(b), "tokens")
	assert.Contains(t, string(b), `"pendingProfile"`)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Result(rec, res))
	assert.NotContains(t, rec.Body.String(), "avatar")
	assert.NotContains(t, rec.Body.String(), "undefined")
}

func TestConflictDocumentRevealsOnlyMethods(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()
	require.NoError(t, r.Result(rec, &svc.CallbackResult{
		Outcome:  svc.OutcomeAccountConflict,
		Provider: "google",
		Conflict: &svc.Conflict{HasPassword: true, LinkedProviders: []string{"kakao"}, AttemptedProvider: "google"},
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "이메일과 비밀번호")
	assert.Contains(t, body, "<li>카카오</li>")
	assert.Contains(t, body, `"code":"account_conflict"`)
	assert.Contains(t, body, `"fallback":"/login"`)
	assert.Contains(t, body, `id="countdown">5<`)
	assert.NotContains(t, body, "@")
	assert.NotContains(t, body, `id="retry"`)
}

func TestErrorDocuments(t *testing.T) {
	r := newRenderer(t)

	t.Run("retryable upstream", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, r.Error(rec, &svc.FlowError{
			Kind: svc.KindTokenExchangeFailed, Code: svc.CodeTokenExchangeFailed, Retryable: true, Provider: "naver",
		}))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `id="retry"`)
		assert.Contains(t, body, `"retryUrl":"/v2/auth/social/naver/start"`)
		assert.Contains(t, body, `"type":"LOGIN_RETRY","provider":"naver"`)
		assert.Contains(t, body, `"code":"token_exchange_failed"`)
	})

	t.Run("retry keeps requested category", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, r.Error(rec, &svc.FlowError{
			Kind: svc.KindProfileFetchFailed, Code: svc.CodeProfileFetchFailed, Retryable: true, Provider: "kakao",
			Category: category.Student, Popup: true,
		}))
		body := rec.Body.String()
		assert.Contains(t, body, `"retryUrl":"/v2/auth/social/kakao/start?category=student\u0026popup=1"`)
	})

	t.Run("terminal missing email", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, r.Error(rec, &svc.FlowError{
			Kind: svc.KindProfileFetchFailed, Code: svc.CodeProfileIncompleteConsent, Provider: "kakao",
		}))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, body, `id="retry"`)
		assert.Contains(t, body, "profile_incomplete_consent")
		assert.Contains(t, body, `"fallback":"/"`)
	})

	t.Run("resolution failure shows correlation only", func(t *testing.T) {
		rec := httptest.NewRecorder()
		fe := &svc.FlowError{
			Kind: svc.KindResolutionFailed, Code: svc.CodeResolutionFailed, Retryable: true,
			Provider: "google", CorrelationID: "corr-123", Err: assert.AnError,
		}
		require.NoError(t, r.Error(rec, fe))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "corr-123")
		assert.NotContains(t, body, assert.AnError.Error())
	})

	t.Run("unknown provider cannot retry", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, r.Error(rec, &svc.FlowError{
			Kind: svc.KindStateInvalid, Code: svc.CodeProviderUnknown, Provider: "facebook",
		}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Body.String(), `id="retry"`)
	})
}

func TestDeliveryTransitions(t *testing.T) {
	assert.True(t, CanTransition(StateInit, StateHasOpener))
	assert.True(t, CanTransition(StateHasOpener, StateMessageSent))
	assert.True(t, CanTransition(StateMessageSent, StateClosing))
	assert.True(t, CanTransition(StateInit, StateNoOpener))
	assert.True(t, CanTransition(StateNoOpener, StateSessionBootstrapped))
	assert.True(t, CanTransition(StateSessionBootstrapped, StateRedirected))

	assert.False(t, CanTransition(StateHasOpener, StateRedirected))
	assert.False(t, CanTransition(StateClosing, StateInit), "no automatic retries")
	assert.False(t, CanTransition(StateRedirected, StateInit))

	assert.True(t, StateClosing.Terminal())
	assert.True(t, StateRedirected.Terminal())
	assert.False(t, StateInit.Terminal())

	// la copia no altera la tabla
	tbl := Transitions()
	tbl[StateInit] = nil
	assert.True(t, CanTransition(StateInit, StateHasOpener))
}
