package fakedata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/dmitrymomot/seedkit/pkg/directive"
)

// Generator produces human-like values. Safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator drawing every value from src.
// *sample.Source satisfies rand.Source.
func New(src rand.Source) *Generator {
	return &Generator{faker: gofakeit.NewFaker(src, true)}
}

// Generate returns the value for a "$" token.
// Currency addresses are returned without their "0x" prefix.
func (g *Generator) Generate(ctx context.Context, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch token {
	case directive.FirstName:
		return g.FirstName(), nil
	case directive.LastName:
		return g.LastName(), nil
	case directive.Email:
		return g.Email(), nil
	case directive.Country:
		return g.Country(), nil
	case directive.URL:
		return g.URL(), nil
	case directive.Avatar:
		return g.Avatar(), nil
	case directive.BTCAddress:
		return strings.TrimPrefix(g.BitcoinAddress(), "0x"), nil
	case directive.ETHAddress:
		return strings.TrimPrefix(g.EthereumAddress(), "0x"), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownToken, token)
}

func (g *Generator) FirstName() string { return g.faker.FirstName() }

func (g *Generator) LastName() string { return g.faker.LastName() }

func (g *Generator) Country() string { return g.faker.Country() }

func (g *Generator) Email() string { return g.faker.Email() }

func (g *Generator) URL() string { return g.faker.URL() }

func (g *Generator) BitcoinAddress() string { return g.faker.BitcoinAddress() }

// Avatar returns one of the numbered avatar images.
func (g *Generator) Avatar() string {
	return fmt.Sprintf(avatarURL, g.faker.Number(1, avatarCount))
}

// EthereumAddress returns "0x" followed by 40 lowercase hex characters.
func (g *Generator) EthereumAddress() string {
	var b strings.Builder
	b.Grow(42)
	b.WriteString("0x")
	for range 40 {
		b.WriteByte(hexAlphabet[g.faker.Number(0, len(hexAlphabet)-1)])
	}
	return b.String()
}
