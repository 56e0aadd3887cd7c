package social

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageShapes(t *testing.T) {
	b, err := json.Marshal(Error("state_invalid", "x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LOGIN_ERROR","code":"state_invalid","message":"x"}`, string(b))

	b, err = json.Marshal(Retry("kakao"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LOGIN_RETRY","provider":"kakao"}`, string(b))

	b, err = json.Marshal(Success(SuccessPayload{
		PendingProfile: &PendingProfile{Email: "c@example.com", Name: "Clinic", Provider: "kakao", ProviderID: "1"},
		Redirect:       "/register/hospital?email=c%40example.com",
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LOGIN_SUCCESS","payload":{
		"isProfileComplete":false,
		"pendingProfile":{"email":"c@example.com","name":"Clinic","provider":"kakao","providerId":"1"},
		"redirect":"/register/hospital?email=c%40example.com"}}`, string(b))
	assert.NotContains(t, string(b), "avatar")
}
