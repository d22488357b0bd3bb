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

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrimeInfo describes a named prime for the primes command
type PrimeInfo struct {
	Name  string
	Bits  int
	Value *big.Int
}

// PrintSplitSummary reports shares written to files
func (p *Printer) PrintSplitSummary(setID string, threshold, total int, files []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"set_id":    setID,
			"threshold": threshold,
			"total":     total,
			"files":     files,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Share set %s (%d of %d)\n", setID, threshold, total)
		for _, f := range files {
			fmt.Fprintf(p.writer, "  - %s\n", f)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints a reconstructed secret
func (p *Printer) PrintSecret(secret *big.Int, setID string, indices []int) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"secret":  secret.String(),
			"set_id":  setID,
			"indices": indices,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, secret.String())
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintInverse prints a modular inverse
func (p *Printer) PrintInverse(a, modulus, inverse *big.Int) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"a":       a.String(),
			"modulus": modulus.String(),
			"inverse": inverse.String(),
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, inverse.String())
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintPrimes prints the named prime table
func (p *Printer) PrintPrimes(primes []PrimeInfo) error {
	switch p.format {
	case OutputFormatJSON:
		list := make([]map[string]interface{}, len(primes))
		for i, pr := range primes {
			list[i] = map[string]interface{}{
				"name":  pr.Name,
				"bits":  pr.Bits,
				"value": pr.Value.String(),
			}
		}
		return p.printJSON(map[string]interface{}{
			"primes": list,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, "Named Primes:")
		for _, pr := range primes {
			fmt.Fprintf(p.writer, "  - %-12s %4d bits  %s\n", pr.Name, pr.Bits, pr.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func (p *Printer) printJSON(v interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
