package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalPhone(t *testing.T) {
	assert.Equal(t, "010-1234-5678", LocalPhone("+82 10-1234-5678"))
	assert.Equal(t, "010-1234-5678", LocalPhone("010-1234-5678"))
	assert.Equal(t, "", LocalPhone(" "))
}

func TestBirthDate(t *testing.T) {
	assert.Equal(t, "1990-01-31", BirthDate("1990", "0131"))
	assert.Equal(t, "1990-01-31", BirthDate("1990", "01-31"))
	assert.Equal(t, "01-31", BirthDate("", "0131"))
	assert.Equal(t, "", BirthDate("1990", ""))
	assert.Equal(t, "", BirthDate("1990", "131"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.RegisterFactory("stub", func(cfg Config) (Provider, error) {
		if cfg.ClientID == "" {
			return nil, ErrNotConfigured
		}
		return nil, nil
	})

	assert.Error(t, r.Enable("missing", Config{}))
	assert.ErrorIs(t, r.Enable("stub", Config{}), ErrNotConfigured)
	assert.Empty(t, r.Enabled())

	_, ok := r.Get("stub")
	assert.False(t, ok)
}
