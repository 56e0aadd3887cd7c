package kakao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
)

func fakeKakao(t *testing.T, me string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "kakao-app", r.PostForm.Get("client_id"))
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"authorization code not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"kakao-at","token_type":"bearer","expires_in":21599}`))
	})
	mux.HandleFunc("/v2/user/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer kakao-at", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(me))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(t *testing.T, srv *httptest.Server) providers.Provider {
	t.Helper()
	p, err := Factory(providers.Config{
		ClientID:    "kakao-app",
		RedirectURI: "http://localhost:8080/v2/auth/social/kakao/callback",
		AuthURL:     srv.URL + "/oauth/authorize",
		TokenURL:    srv.URL + "/oauth/token",
		ProfileURL:  srv.URL + "/v2/user/me",
		HTTPClient:  srv.Client(),
	})
	require.NoError(t, err)
	return p
}

func TestExchangeAndUserInfo(t *testing.T) {
	srv := fakeKakao(t, `{
		"id": 4242,
		"kakao_account": {
			"email": "kim@example.com",
			"is_email_verified": true,
			"phone_number": "+82 10-1111-2222",
			"birthyear": "1991",
			"birthday": "0704",
			"profile": {"nickname": "kim", "profile_image_url": "https://k.example/p.png"}
		}
	}`)
	p := newProvider(t, srv)
	ctx := context.Background()

	tok, err := p.Exchange(ctx, "good-code")
	require.NoError(t, err)
	assert.Equal(t, "kakao-at", tok.AccessToken)

	prof, err := p.UserInfo(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "4242", prof.ProviderID)
	assert.Equal(t, "kim@example.com", prof.Email)
	assert.True(t, prof.EmailVerified)
	assert.Equal(t, "kim", prof.Name)
	assert.Equal(t, "https://k.example/p.png", prof.Picture)
	assert.Equal(t, "010-1111-2222", prof.Phone)
	assert.Equal(t, "1991-07-04", prof.BirthDate)
	assert.NotNil(t, prof.Raw["kakao_account"])
}

func TestExchangeRejectedCode(t *testing.T) {
	p := newProvider(t, fakeKakao(t, `{}`))
	_, err := p.Exchange(context.Background(), "expired")
	require.Error(t, err)
}

func TestUserInfoWithoutEmail(t *testing.T) {
	p := newProvider(t, fakeKakao(t, `{"id": 7, "kakao_account": {"profile": {"nickname": "anon"}}}`))
	prof, err := p.UserInfo(context.Background(), "kakao-at")
	require.NoError(t, err)
	assert.Empty(t, prof.Email)
	assert.Empty(t, prof.Phone)
	assert.Empty(t, prof.BirthDate)
}

func TestUserInfoWithoutID(t *testing.T) {
	p := newProvider(t, fakeKakao(t, `{"kakao_account": {"email": "x@y.z"}}`))
	_, err := p.UserInfo(context.Background(), "kakao-at")
	assert.ErrorIs(t, err, providers.ErrMissingField)
}

func TestAuthorizeURL(t *testing.T) {
	srv := fakeKakao(t, `{}`)
	u, err := url.Parse(newProvider(t, srv).AuthorizeURL("st-1"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "/oauth/authorize", u.Path)
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "kakao-app", q.Get("client_id"))
	assert.Equal(t, "st-1", q.Get("state"))
	assert.Equal(t, "http://localhost:8080/v2/auth/social/kakao/callback", q.Get("redirect_uri"))
}

func TestFactoryRequiresClientID(t *testing.T) {
	_, err := Factory(providers.Config{})
	assert.ErrorIs(t, err, providers.ErrNotConfigured)
}
