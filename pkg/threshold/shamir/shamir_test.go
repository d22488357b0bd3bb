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

package shamir

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	secretrand "github.com/jeremyhahn/go-secretshare/pkg/crypto/rand"
	"github.com/jeremyhahn/go-secretshare/pkg/field"
)

const scenarioSecret = "12345678901234567890123456789012345678"

func mustInt(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad integer literal %q", s)
	return v
}

// subsets returns every size-k subset of shares, preserving order
func subsets(shares []*Share, k int) [][]*Share {
	var out [][]*Share
	var walk func(start int, acc []*Share)
	walk = func(start int, acc []*Share) {
		if len(acc) == k {
			out = append(out, append([]*Share(nil), acc...))
			return
		}
		for i := start; i < len(shares); i++ {
			walk(i+1, append(acc, shares[i]))
		}
	}
	walk(0, nil)
	return out
}

func TestCreate_Mersenne127ThreeOfSix(t *testing.T) {
	q := field.Mersenne127()
	secret := mustInt(t, scenarioSecret)

	shares, err := Create(rand.Reader, 3, 6, q, secret)
	require.NoError(t, err)
	require.Len(t, shares, 6)

	for i, share := range shares {
		assert.Equal(t, i+1, share.Index)
		assert.True(t, field.InRange(share.Value, q))
	}

	all := subsets(shares, 3)
	require.Len(t, all, 20)
	for _, subset := range all {
		got, err := Reconstruct(q, subset)
		require.NoError(t, err)
		assert.Equal(t, 0, secret.Cmp(got), "subset %v", Pairs(subset))
	}

	for k := 4; k <= 6; k++ {
		for _, subset := range subsets(shares, k) {
			got, err := Reconstruct(q, subset)
			require.NoError(t, err)
			assert.Equal(t, 0, secret.Cmp(got))
		}
	}
}

func TestCreate_RoundTripAcrossPrimes(t *testing.T) {
	params := []struct{ k, n int }{{1, 1}, {1, 4}, {2, 2}, {2, 5}, {3, 5}, {5, 7}, {7, 7}}

	for _, name := range field.PrimeNames() {
		q, err := field.Prime(name)
		require.NoError(t, err)

		for _, p := range params {
			secret, err := rand.Int(rand.Reader, q)
			require.NoError(t, err)

			shares, err := Create(rand.Reader, p.k, p.n, q, secret)
			require.NoError(t, err, "%s k=%d n=%d", name, p.k, p.n)

			for _, subset := range subsets(shares, p.k) {
				got, err := ReconstructThreshold(q, p.k, subset)
				require.NoError(t, err)
				require.Equal(t, 0, secret.Cmp(got), "%s k=%d n=%d", name, p.k, p.n)
			}
		}
	}
}

func TestCreate_SmallField(t *testing.T) {
	q := big.NewInt(127)
	for s := int64(0); s < 127; s += 7 {
		secret := big.NewInt(s)
		shares, err := Create(rand.Reader, 3, 5, q, secret)
		require.NoError(t, err)

		got, err := Reconstruct(q, []*Share{shares[4], shares[0], shares[2]})
		require.NoError(t, err)
		assert.Equal(t, s, got.Int64())
	}
}

func TestCreate_ThresholdOneSharesEqualSecret(t *testing.T) {
	q := field.Mersenne127()
	secret := big.NewInt(42)

	shares, err := Create(rand.Reader, 1, 4, q, secret)
	require.NoError(t, err)
	for _, share := range shares {
		assert.Equal(t, int64(42), share.Value.Int64())
	}
}

func TestCreate_SecretBoundary(t *testing.T) {
	q := field.Mersenne127()

	upper := new(big.Int).Sub(q, big.NewInt(1))
	shares, err := Create(rand.Reader, 2, 3, q, upper)
	require.NoError(t, err)
	got, err := Reconstruct(q, shares[1:])
	require.NoError(t, err)
	assert.Equal(t, 0, upper.Cmp(got))

	zero := big.NewInt(0)
	shares, err = Create(rand.Reader, 2, 3, q, zero)
	require.NoError(t, err)
	got, err = Reconstruct(q, shares[:2])
	require.NoError(t, err)
	assert.Equal(t, 0, got.Sign())
}

func TestCreate_InvalidInput(t *testing.T) {
	q := field.Mersenne127()
	s := big.NewInt(7)

	tests := []struct {
		name      string
		k, n      int
		modulus   *big.Int
		secret    *big.Int
		expectErr error
	}{
		{name: "secret equal to modulus", k: 2, n: 3, modulus: q, secret: field.Mersenne127(), expectErr: ErrInvalidSecret},
		{name: "secret above modulus", k: 2, n: 3, modulus: q, secret: new(big.Int).Lsh(q, 1), expectErr: ErrInvalidSecret},
		{name: "negative secret", k: 2, n: 3, modulus: q, secret: big.NewInt(-1), expectErr: ErrInvalidSecret},
		{name: "nil secret", k: 2, n: 3, modulus: q, secret: nil, expectErr: ErrInvalidSecret},
		{name: "zero threshold", k: 0, n: 3, modulus: q, secret: s, expectErr: ErrInvalidThreshold},
		{name: "threshold above total", k: 4, n: 3, modulus: q, secret: s, expectErr: ErrInvalidThreshold},
		{name: "zero total", k: 0, n: 0, modulus: q, secret: s, expectErr: ErrInvalidThreshold},
		{name: "total equal to modulus", k: 2, n: 7, modulus: big.NewInt(7), secret: big.NewInt(3), expectErr: ErrInvalidShareCount},
		{name: "nil modulus", k: 2, n: 3, modulus: nil, secret: s, expectErr: field.ErrInvalidModulus},
		{name: "modulus one", k: 1, n: 1, modulus: big.NewInt(1), secret: big.NewInt(0), expectErr: field.ErrInvalidModulus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Create(rand.Reader, tt.k, tt.n, tt.modulus, tt.secret)
			assert.ErrorIs(t, err, tt.expectErr)
			assert.Nil(t, shares)
		})
	}
}

func TestCreate_RandomSourceFailure(t *testing.T) {
	q := field.Mersenne127()
	s := big.NewInt(9)

	_, err := Create(nil, 2, 3, q, s)
	assert.ErrorIs(t, err, ErrRandomSource)

	readErr := errors.New("entropy exhausted")
	_, err = Create(iotest.ErrReader(readErr), 2, 3, q, s)
	assert.ErrorIs(t, err, ErrRandomSource)
	assert.ErrorIs(t, err, readErr)

	// threshold 1 draws no coefficients
	shares, err := Create(iotest.ErrReader(readErr), 1, 3, q, s)
	require.NoError(t, err)
	assert.Len(t, shares, 3)
}

func TestCreate_SeededReaderIsDeterministic(t *testing.T) {
	q := field.Ed25519Order()
	secret := big.NewInt(123456789)

	r1, err := secretrand.NewSeededReader([]byte("fixture"))
	require.NoError(t, err)
	r2, err := secretrand.NewSeededReader([]byte("fixture"))
	require.NoError(t, err)

	a, err := Create(r1, 3, 5, q, secret)
	require.NoError(t, err)
	b, err := Create(r2, 3, 5, q, secret)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, 0, a[i].Value.Cmp(b[i].Value))
	}
}

func TestCreate_DoesNotMutateInputs(t *testing.T) {
	q := field.Mersenne127()
	secret := mustInt(t, scenarioSecret)

	_, err := Create(rand.Reader, 3, 5, q, secret)
	require.NoError(t, err)

	assert.Equal(t, scenarioSecret, secret.String())
	assert.Equal(t, 0, q.Cmp(field.Mersenne127()))
}

func TestCreate_Concurrent(t *testing.T) {
	q := field.Mersenne127()
	secret := mustInt(t, scenarioSecret)
	rng, err := secretrand.NewSeededReader([]byte("concurrent"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			shares, err := Create(rng, 3, 5, q, secret)
			if err != nil {
				errs <- err
				return
			}
			got, err := Reconstruct(q, shares[2:])
			if err != nil {
				errs <- err
				return
			}
			if got.Cmp(secret) != 0 {
				errs <- errors.New("wrong secret")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestReconstruct_BelowThresholdDoesNotRevealSecret(t *testing.T) {
	q := field.Mersenne127()
	secret := mustInt(t, scenarioSecret)

	for trial := 0; trial < 50; trial++ {
		shares, err := Create(rand.Reader, 3, 5, q, secret)
		require.NoError(t, err)

		for _, subset := range subsets(shares, 2) {
			got, err := Reconstruct(q, subset)
			require.NoError(t, err)
			assert.NotEqual(t, 0, secret.Cmp(got))
		}
	}
}

func TestReconstruct_DuplicateIndex(t *testing.T) {
	q := big.NewInt(127)
	shares, err := Create(rand.Reader, 2, 3, q, big.NewInt(5))
	require.NoError(t, err)

	dup := []*Share{shares[0], {Value: big.NewInt(1), Index: shares[0].Index}}
	_, err = Reconstruct(q, dup)
	assert.ErrorIs(t, err, ErrDuplicateShareIndex)

	congruent := []*Share{shares[0], {Value: big.NewInt(1), Index: shares[0].Index + 127}}
	_, err = Reconstruct(q, congruent)
	assert.ErrorIs(t, err, ErrDuplicateShareIndex)
}

func TestReconstruct_InvalidInput(t *testing.T) {
	q := field.Mersenne127()

	tests := []struct {
		name      string
		modulus   *big.Int
		shares    []*Share
		expectErr error
	}{
		{name: "empty subset", modulus: q, shares: nil, expectErr: ErrInsufficientShares},
		{name: "nil share", modulus: q, shares: []*Share{nil}, expectErr: ErrInvalidShare},
		{name: "nil value", modulus: q, shares: []*Share{{Index: 1}}, expectErr: ErrInvalidShare},
		{name: "zero index", modulus: q, shares: []*Share{{Value: big.NewInt(1), Index: 0}}, expectErr: ErrInvalidShare},
		{name: "negative value", modulus: q, shares: []*Share{{Value: big.NewInt(-1), Index: 1}}, expectErr: ErrInvalidShare},
		{name: "value equal to modulus", modulus: q, shares: []*Share{{Value: field.Mersenne127(), Index: 1}}, expectErr: ErrInvalidShare},
		{name: "nil modulus", modulus: nil, shares: []*Share{{Value: big.NewInt(1), Index: 1}}, expectErr: field.ErrInvalidModulus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := Reconstruct(tt.modulus, tt.shares)
			assert.ErrorIs(t, err, tt.expectErr)
			assert.Nil(t, secret)
		})
	}
}

func TestReconstructThreshold(t *testing.T) {
	q := field.Mersenne127()
	secret := big.NewInt(31337)
	shares, err := Create(rand.Reader, 3, 5, q, secret)
	require.NoError(t, err)

	_, err = ReconstructThreshold(q, 3, shares[:2])
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = ReconstructThreshold(q, 0, shares)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	got, err := ReconstructThreshold(q, 3, shares[1:4])
	require.NoError(t, err)
	assert.Equal(t, int64(31337), got.Int64())
}

func TestReconstruct_CompositeModulusDoesNotPanic(t *testing.T) {
	q := big.NewInt(15)
	shares, err := Create(rand.Reader, 2, 4, q, big.NewInt(4))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, _ = Reconstruct(q, shares)
		_, _ = Reconstruct(q, shares[:2])
	})
}

func TestPolynomial_CoefficientWidth(t *testing.T) {
	assert.Equal(t, 128, coefficientBytes(field.Mersenne127()))
	assert.Equal(t, 128, coefficientBytes(field.Mersenne521()))

	// 2^1000 has 1001 bits: 1001+128 bits round up to 142 bytes
	wide := new(big.Int).Lsh(big.NewInt(1), 1000)
	assert.Equal(t, 142, coefficientBytes(wide))

	// 896 bits is the widest modulus still covered by the 1024-bit floor
	at896 := new(big.Int).Lsh(big.NewInt(1), 895)
	at897 := new(big.Int).Lsh(big.NewInt(1), 896)
	require.Equal(t, 896, at896.BitLen())
	require.Equal(t, 897, at897.BitLen())
	assert.Equal(t, 128, coefficientBytes(at896))
	assert.Equal(t, 129, coefficientBytes(at897))
}

func TestPolynomial_Zeroize(t *testing.T) {
	q := field.Mersenne127()
	secret := mustInt(t, scenarioSecret)

	p, err := newPolynomial(rand.Reader, 4, q, secret)
	require.NoError(t, err)
	require.Len(t, p.coefficients, 4)
	assert.Equal(t, 0, p.coefficients[0].Cmp(secret))

	kept := append([]*big.Int(nil), p.coefficients...)
	p.zeroize()

	assert.Nil(t, p.coefficients)
	for _, c := range kept {
		assert.Equal(t, 0, c.Sign())
	}
	assert.Equal(t, scenarioSecret, secret.String(), "caller's secret must survive zeroize")
}

func TestPolynomial_EvaluateAtZero(t *testing.T) {
	q := field.Mersenne127()
	secret := big.NewInt(99)

	p, err := newPolynomial(rand.Reader, 3, q, secret)
	require.NoError(t, err)
	defer p.zeroize()

	assert.Equal(t, int64(99), p.evaluate(big.NewInt(0), q).Int64())
}

func BenchmarkCreate_Mersenne127(b *testing.B) {
	q := field.Mersenne127()
	secret := mustInt(b, scenarioSecret)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Create(rand.Reader, 3, 6, q, secret); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReconstruct_Mersenne127(b *testing.B) {
	q := field.Mersenne127()
	shares, err := Create(rand.Reader, 3, 6, q, mustInt(b, scenarioSecret))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Reconstruct(q, shares[:3]); err != nil {
			b.Fatal(err)
		}
	}
}
