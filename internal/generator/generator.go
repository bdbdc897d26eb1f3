package generator

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// CodeLength — длина короткого кода.
const CodeLength = 6

// hashPrefixLength — сколько символов кода берётся из хэша URL.
const hashPrefixLength = 4

// charset — алфавит случайной части кода.
const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrEmptyURL возвращается при попытке сгенерировать код для пустой строки.
var ErrEmptyURL = errors.New("empty string cannot be shortened")

// Generator генерирует кандидаты коротких кодов: детерминированный префикс
// из SHA-256 хэша URL плюс случайный суффикс. Уникальность кода Generator
// не гарантирует — за это отвечает вызывающий слой через хранилище.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New создает Generator с переданным источником случайности.
// Если rnd == nil, используется источник, засеянный текущим временем.
func New(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// Generate возвращает кандидат короткого кода длиной CodeLength для URL.
// Префикс http:// или https:// отбрасывается перед хэшированием, поэтому
// один и тот же адрес по обеим схемам дает одинаковый префикс кода.
func (g *Generator) Generate(rawURL string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", ErrEmptyURL
	}

	code := []byte(hashPrefix(stripScheme(rawURL)))

	g.mu.Lock()
	for len(code) < CodeLength {
		code = append(code, charset[g.rnd.Intn(len(charset))])
	}
	g.mu.Unlock()

	return string(code), nil
}

// stripScheme отбрасывает ведущий http:// или https:// (только первое вхождение).
// Строка без схемы возвращается как есть.
func stripScheme(rawURL string) string {
	if after, ok := strings.CutPrefix(rawURL, "https://"); ok {
		return after
	}
	if after, ok := strings.CutPrefix(rawURL, "http://"); ok {
		return after
	}
	return rawURL
}

// hashPrefix возвращает до hashPrefixLength символов из base64url-представления
// SHA-256 хэша строки. Символы '-' и '_' отфильтровываются, чтобы код целиком
// оставался в алфавите [A-Za-z0-9]; префикс при этом остается детерминированным.
func hashPrefix(input string) string {
	sum := sha256.Sum256([]byte(input))
	encoded := base64.RawURLEncoding.EncodeToString(sum[:])

	prefix := make([]byte, 0, hashPrefixLength)
	for i := 0; i < len(encoded) && len(prefix) < hashPrefixLength; i++ {
		c := encoded[i]
		if c == '-' || c == '_' {
			continue
		}
		prefix = append(prefix, c)
	}
	return string(prefix)
}
