package colormath

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrNoName is returned by Name when no CSS color name matches exactly.
var ErrNoName = errors.New("no color name")

// namesByHex maps #rrggbb to the alphabetically first CSS name with that value,
// so aqua wins over cyan and gray over grey.
var namesByHex = func() map[string]string {
	names := append([]string{}, colornames.Names...)
	for name := range extraNames {
		names = append(names, name)
	}
	slices.Sort(names)

	m := make(map[string]string, len(names))
	for _, name := range names {
		rgba, _ := namedColor(name)
		hex := colorful.Color{
			R: float64(rgba.R) / 255.0,
			G: float64(rgba.G) / 255.0,
			B: float64(rgba.B) / 255.0,
		}.Hex()
		if _, taken := m[hex]; !taken {
			m[hex] = name
		}
	}
	return m
}()

// Name returns the CSS color name of token.
func Name(token string) (string, error) {
	hex, err := Hex(token)
	if err != nil {
		return "", err
	}
	name, ok := namesByHex[hex]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoName, hex)
	}
	return name, nil
}
