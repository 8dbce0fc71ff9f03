package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{LocalKey("speed"), "speed"},
		{ShadowKey("speed"), "*speed"},
		{LocalKey("*speed"), `\*speed`},
		{LocalKey(`\speed`), `\\speed`},
		{ShadowKey("*speed"), "**speed"},
		{LocalKey(""), ""},
		{ParentKey, "parent"},
		{LocalKey(FreeRowName), `\free`},
		{ShadowKey(FreeRowName), "*free"},
		{LocalKey("freedom"), "freedom"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestParseKeyInvertsString(t *testing.T) {
	keys := []Key{
		LocalKey("speed"),
		ShadowKey("speed"),
		LocalKey("*speed"),
		LocalKey(`\speed`),
		LocalKey(`\*speed`),
		ShadowKey("*speed"),
		ShadowKey(`\speed`),
		LocalKey("a=b"),
		LocalKey(FreeRowName),
		ShadowKey(FreeRowName),
		ParentKey,
	}
	for _, k := range keys {
		t.Run(k.String(), func(t *testing.T) {
			assert.Equal(t, k, ParseKey(k.String()))
		})
	}
}

func TestParseKeyMarker(t *testing.T) {
	k := ParseKey("*hp")
	assert.True(t, k.IsShadow())
	assert.Equal(t, "hp", k.Name)

	k = ParseKey("hp")
	assert.False(t, k.IsShadow())
	assert.Equal(t, "hp", k.Name)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "local", Local.String())
	assert.Equal(t, "shadow", Shadow.String())
}
