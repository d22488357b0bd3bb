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
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/jeremyhahn/go-secretshare/pkg/adapters/logger"
	"github.com/jeremyhahn/go-secretshare/pkg/crypto/rand"
	"github.com/jeremyhahn/go-secretshare/pkg/field"
	"github.com/jeremyhahn/go-secretshare/pkg/metrics"
)

// Config holds the parameters a Scheme is bound to
type Config struct {
	// Threshold is the number of shares needed to reconstruct (k)
	Threshold int

	// Total is the number of shares dealt (n)
	Total int

	// Modulus is the prime q of the field
	Modulus *big.Int

	// Random supplies polynomial coefficients. Defaults to crypto/rand.
	Random io.Reader

	// Logger defaults to a no-op logger
	Logger logger.Logger
}

// Scheme splits and combines secrets with fixed parameters. It is safe for
// concurrent use when Random is.
type Scheme struct {
	threshold int
	total     int
	modulus   *big.Int
	random    io.Reader
	logger    logger.Logger
}

// NewScheme validates config and returns a Scheme bound to it.
func NewScheme(config *Config) (*Scheme, error) {
	if config == nil {
		return nil, ErrInvalidConfig
	}
	if err := field.ValidateModulus(config.Modulus); err != nil {
		return nil, err
	}
	if config.Threshold < 1 || config.Threshold > config.Total {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidThreshold, config.Threshold, config.Total)
	}
	if big.NewInt(int64(config.Total)).Cmp(config.Modulus) >= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidShareCount, config.Total)
	}

	s := &Scheme{
		threshold: config.Threshold,
		total:     config.Total,
		modulus:   new(big.Int).Set(config.Modulus),
		random:    config.Random,
		logger:    config.Logger,
	}
	if s.random == nil {
		s.random = &rand.SoftwareResolver{}
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}
	s.logger = s.logger.With(
		logger.Int("threshold", s.threshold),
		logger.Int("total", s.total),
		logger.Int("modulus_bits", s.modulus.BitLen()))
	return s, nil
}

// Threshold returns k
func (s *Scheme) Threshold() int { return s.threshold }

// Total returns n
func (s *Scheme) Total() int { return s.total }

// Modulus returns a copy of q
func (s *Scheme) Modulus() *big.Int { return new(big.Int).Set(s.modulus) }

// Split deals secret into Total shares.
func (s *Scheme) Split(secret *big.Int) ([]*Share, error) {
	start := time.Now()
	shares, err := Create(s.random, s.threshold, s.total, s.modulus, secret)
	s.observe(metrics.OpCreate, start, err)
	if err != nil {
		s.logger.Warn("split rejected", logger.Error(err))
		return nil, err
	}
	metrics.RecordShares(len(shares))
	s.logger.Debug("secret split", logger.Int("shares", len(shares)))
	return shares, nil
}

// Combine reconstructs the secret from at least Threshold shares.
func (s *Scheme) Combine(shares []*Share) (*big.Int, error) {
	start := time.Now()
	secret, err := ReconstructThreshold(s.modulus, s.threshold, shares)
	s.observe(metrics.OpReconstruct, start, err)
	if err != nil {
		s.logger.Warn("combine rejected", logger.Error(err), logger.Int("shares", len(shares)))
		return nil, err
	}
	s.logger.Debug("secret reconstructed", logger.Ints("indices", indices(shares)))
	return secret, nil
}

func (s *Scheme) observe(operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		metrics.RecordError(operation, ErrorType(err))
	}
	metrics.RecordOperation(operation, status, time.Since(start).Seconds())
}

func indices(shares []*Share) []int {
	out := make([]int, len(shares))
	for i, sh := range shares {
		out[i] = sh.Index
	}
	return out
}

// ErrorType maps an error to a metrics label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidSecret):
		return "invalid_secret"
	case errors.Is(err, ErrInvalidThreshold):
		return "invalid_threshold"
	case errors.Is(err, ErrInvalidShareCount):
		return "invalid_share_count"
	case errors.Is(err, ErrDuplicateShareIndex):
		return "duplicate_share_index"
	case errors.Is(err, ErrInsufficientShares):
		return "insufficient_shares"
	case errors.Is(err, ErrInvalidShare):
		return "invalid_share"
	case errors.Is(err, ErrRandomSource):
		return "random_source"
	case errors.Is(err, field.ErrInvalidModulus):
		return "invalid_modulus"
	case errors.Is(err, field.ErrInvalidInverseInput):
		return "invalid_inverse_input"
	default:
		return "internal"
	}
}
