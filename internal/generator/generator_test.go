package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{
			name:    "Test valid URL",
			value:   "https://vk.com",
			wantErr: false,
		},
		{
			name:    "Test URL without scheme",
			value:   "vk.com",
			wantErr: false,
		},
		{
			name:    "Test empty string",
			value:   "",
			wantErr: true,
		},
		{
			name:    "Test blank string",
			value:   "   ",
			wantErr: true,
		},
	}

	g := newSeeded(1)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, err := g.Generate(test.value)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, code, CodeLength)
		})
	}
}

func TestGenerateAlphabet(t *testing.T) {
	g := newSeeded(42)
	urls := []string{
		"https://example.com/a/b",
		"http://example.com",
		"https://vk.com",
		"https://ya.ru/some/very/long/path?with=query&params=1",
		"example.org",
	}

	for _, u := range urls {
		for i := 0; i < 50; i++ {
			code, err := g.Generate(u)
			require.NoError(t, err)
			require.Len(t, code, CodeLength)
			for _, c := range code {
				assert.Contains(t, charset, string(c),
					"код %q содержит символ вне алфавита", code)
			}
		}
	}
}

func TestGenerateDeterministicPrefix(t *testing.T) {
	g := newSeeded(7)

	first, err := g.Generate("https://example.com/a/b")
	require.NoError(t, err)
	second, err := g.Generate("https://example.com/a/b")
	require.NoError(t, err)

	// Префикс детерминирован хэшем URL, суффикс случаен
	assert.Equal(t, first[:hashPrefixLength], second[:hashPrefixLength])
}

func TestGenerateSchemeStripped(t *testing.T) {
	g := newSeeded(7)

	withHTTPS, err := g.Generate("https://example.com")
	require.NoError(t, err)
	withHTTP, err := g.Generate("http://example.com")
	require.NoError(t, err)
	bare, err := g.Generate("example.com")
	require.NoError(t, err)

	// Схема отбрасывается перед хэшированием, префиксы совпадают
	assert.Equal(t, withHTTPS[:hashPrefixLength], withHTTP[:hashPrefixLength])
	assert.Equal(t, withHTTPS[:hashPrefixLength], bare[:hashPrefixLength])
}

func TestGenerateDistinctCodes(t *testing.T) {
	g := newSeeded(99)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := g.Generate("https://example.com")
		require.NoError(t, err)
		seen[code] = true
	}

	// Случайный суффикс дает разные коды для одного и того же URL
	assert.Greater(t, len(seen), 1)
}

func TestStripScheme(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "https", value: "https://vk.com", want: "vk.com"},
		{name: "http", value: "http://vk.com", want: "vk.com"},
		{name: "no scheme", value: "vk.com", want: "vk.com"},
		{name: "only first occurrence", value: "https://vk.com/?u=https://ya.ru", want: "vk.com/?u=https://ya.ru"},
		{name: "scheme not at start", value: "see https://vk.com", want: "see https://vk.com"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, stripScheme(test.value))
		})
	}
}

func TestHashPrefixAlphanumeric(t *testing.T) {
	// Перебираем входы, пока base64url хэша не даст '-' или '_' в начале:
	// префикс обязан оставаться в [A-Za-z0-9]
	inputs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for _, in := range inputs {
		prefix := hashPrefix(in)
		require.NotEmpty(t, prefix)
		assert.NotContains(t, prefix, "-")
		assert.NotContains(t, prefix, "_")
		assert.LessOrEqual(t, len(prefix), hashPrefixLength)
	}
}
