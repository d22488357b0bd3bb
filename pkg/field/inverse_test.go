// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-secretshare.
//
// go-secretshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package field

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInt(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid integer literal %q", s)
	return v
}

func TestInverse_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a    string
		p    string
		want string
	}{
		{name: "79 mod 127", a: "79", p: "127", want: "82"},
		{name: "50 mod 127", a: "50", p: "127", want: "94"},
		{name: "1 mod 2", a: "1", p: "2", want: "1"},
		{
			name: "ed25519 order",
			a:    "182687704666362864775460604089535377456991567872",
			p:    "7237005577332262213973186563042994240857116359379907606001950938285454250989",
			want: "7155219595916845557842258654134856828180378438239419449390401977965479867845",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inverse(mustInt(t, tt.a), mustInt(t, tt.p))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestInverse_SmallPrimeExhaustive(t *testing.T) {
	p := big.NewInt(127)
	one := big.NewInt(1)

	for i := int64(1); i < 127; i++ {
		a := big.NewInt(i)
		inv, err := Inverse(a, p)
		require.NoError(t, err)
		assert.Equal(t, 0, Mul(a, inv, p).Cmp(one), "inverse(%d) = %s", i, inv)
	}
}

func TestInverse_LargePrimes(t *testing.T) {
	one := big.NewInt(1)

	for _, name := range PrimeNames() {
		p, err := Prime(name)
		require.NoError(t, err)

		t.Run(name, func(t *testing.T) {
			for i := 0; i < 16; i++ {
				a, err := rand.Int(rand.Reader, new(big.Int).Sub(p, one))
				require.NoError(t, err)
				a.Add(a, one) // [1, p-1]

				inv, err := Inverse(a, p)
				require.NoError(t, err)
				assert.True(t, InRange(inv, p))
				assert.Equal(t, 0, Mul(a, inv, p).Cmp(one))
			}
		})
	}
}

func TestInverse_InvalidInput(t *testing.T) {
	p := big.NewInt(127)

	tests := []struct {
		name string
		a    *big.Int
		p    *big.Int
	}{
		{name: "nil a", a: nil, p: p},
		{name: "nil p", a: big.NewInt(3), p: nil},
		{name: "zero a", a: big.NewInt(0), p: p},
		{name: "negative a", a: big.NewInt(-3), p: p},
		{name: "a equals p", a: big.NewInt(127), p: p},
		{name: "a greater than p", a: big.NewInt(200), p: p},
		{name: "zero p", a: big.NewInt(3), p: big.NewInt(0)},
		{name: "negative p", a: big.NewInt(3), p: big.NewInt(-127)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Inverse(tt.a, tt.p)
			assert.ErrorIs(t, err, ErrInvalidInverseInput)
			assert.Nil(t, inv)
		})
	}
}

// A composite modulus is accepted; the result is simply not an inverse
// when a shares a factor with the modulus.
func TestInverse_CompositeModulusIsNotDetected(t *testing.T) {
	m := big.NewInt(15)

	inv, err := Inverse(big.NewInt(6), m)
	require.NoError(t, err)
	assert.NotEqual(t, int64(1), Mul(big.NewInt(6), inv, m).Int64())
}

func BenchmarkInverse_Ed25519Order(b *testing.B) {
	p := mustInt(b, "7237005577332262213973186563042994240857116359379907606001950938285454250989")
	a := mustInt(b, "182687704666362864775460604089535377456991567872")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Inverse(a, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInverse_Mersenne521(b *testing.B) {
	p := Mersenne521()
	a := new(big.Int).Rsh(p, 7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Inverse(a, p); err != nil {
			b.Fatal(err)
		}
	}
}
