package naver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
)

func newFake(t *testing.T, status int, me string) providers.Provider {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2.0/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "naver-secret", r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"naver-at","refresh_token":"naver-rt","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/nid/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(me))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p, err := Factory(providers.Config{
		ClientID:     "naver-app",
		ClientSecret: "naver-secret",
		TokenURL:     srv.URL + "/oauth2.0/token",
		ProfileURL:   srv.URL + "/v1/nid/me",
		HTTPClient:   srv.Client(),
	})
	require.NoError(t, err)
	return p
}

func TestNaverProfile(t *testing.T) {
	p := newFake(t, http.StatusOK, `{
		"resultcode": "00",
		"message": "success",
		"response": {
			"id": "nv-abc",
			"email": "lee@example.com",
			"name": "Lee",
			"profile_image": "https://n.example/lee.png",
			"mobile": "010-3333-4444",
			"birthyear": "1988",
			"birthday": "12-24"
		}
	}`)
	ctx := context.Background()

	tok, err := p.Exchange(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, "naver-rt", tok.RefreshToken)

	prof, err := p.UserInfo(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "nv-abc", prof.ProviderID)
	assert.Equal(t, "Lee", prof.Name)
	assert.Equal(t, "010-3333-4444", prof.Phone)
	assert.Equal(t, "1988-12-24", prof.BirthDate)
}

func TestNaverResultCodeError(t *testing.T) {
	p := newFake(t, http.StatusOK, `{"resultcode":"024","message":"Authentication failed"}`)
	_, err := p.UserInfo(context.Background(), "naver-at")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "024")
}

func TestNaverHTTPError(t *testing.T) {
	p := newFake(t, http.StatusUnauthorized, `{"resultcode":"024"}`)
	_, err := p.UserInfo(context.Background(), "naver-at")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
