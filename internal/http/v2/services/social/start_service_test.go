package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
)

func TestStartDefaultsToVeterinarian(t *testing.T) {
	h := newHarness(t, &fakeProvider{name: "kakao"})

	res, err := h.svc.Start.Start(context.Background(), StartRequest{Provider: " Kakao ", Popup: true})
	require.NoError(t, err)
	assert.Contains(t, res.RedirectURL, "https://idp.test/authorize?state=")
	assert.Equal(t, "kakao", res.State.Provider)
	assert.Equal(t, category.Veterinarian, res.State.Category)
	assert.True(t, res.State.Popup)
}

func TestStartHonoursCategory(t *testing.T) {
	h := newHarness(t, &fakeProvider{name: "naver"})

	res, err := h.svc.Start.Start(context.Background(), StartRequest{Provider: "naver", Category: "hospital"})
	require.NoError(t, err)
	assert.Equal(t, category.Hospital, res.State.Category)
	assert.False(t, res.State.Popup)
}

func TestStartRejects(t *testing.T) {
	h := newHarness(t, &fakeProvider{name: "kakao"})

	_, err := h.svc.Start.Start(context.Background(), StartRequest{Provider: "facebook"})
	assert.ErrorIs(t, err, ErrStartProviderUnknown)

	_, err = h.svc.Start.Start(context.Background(), StartRequest{Provider: "kakao", Category: "clinic"})
	assert.ErrorIs(t, err, ErrStartCategoryInvalid)
}
