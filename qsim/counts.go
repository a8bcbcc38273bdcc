package qsim

import (
	"fmt"
	"sort"
)

// Counts maps a measured classical bitstring (c[n-1]...c[0], highest
// classical bit leftmost) to the number of shots that produced it.
type Counts map[string]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// MostFrequent returns the outcome with the highest count. Ties break
// toward the lexicographically smaller bitstring so results are stable.
func (c Counts) MostFrequent() (string, int) {
	best, bestN := "", -1
	for outcome, n := range c {
		if n > bestN || (n == bestN && outcome < best) {
			best, bestN = outcome, n
		}
	}
	if bestN < 0 {
		return "", 0
	}
	return best, bestN
}

// Probability returns the observed frequency of an outcome.
func (c Counts) Probability(outcome string) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[outcome]) / float64(total)
}

// Outcomes returns all observed bitstrings in lexicographic order.
func (c Counts) Outcomes() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Without returns a copy of the counts with one outcome removed. Used to
// isolate the error distribution around an expected outcome.
func (c Counts) Without(outcome string) Counts {
	rest := make(Counts, len(c))
	for k, n := range c {
		if k != outcome {
			rest[k] = n
		}
	}
	return rest
}

// SplitByLengths divides each outcome bitstring into segments of the given
// lengths (left to right) and aggregates counts per segment position. Useful
// when independent circuits were packed into one classical register.
func (c Counts) SplitByLengths(lengths []int) ([]Counts, error) {
	parts := make([]Counts, len(lengths))
	for i := range parts {
		parts[i] = make(Counts)
	}
	for outcome, n := range c {
		pos := 0
		for i, length := range lengths {
			if pos+length > len(outcome) {
				return nil, fmt.Errorf("outcome %q shorter than segment lengths %v", outcome, lengths)
			}
			parts[i][outcome[pos:pos+length]] += n
			pos += length
		}
		if pos != len(outcome) {
			return nil, fmt.Errorf("outcome %q longer than segment lengths %v", outcome, lengths)
		}
	}
	return parts, nil
}

// FormatBitstring renders a sampled basis index as a classical bitstring
// using the circuit's measurement map: classical bit k takes the value of
// its measured qubit, and bit numCBits-1 is leftmost.
func FormatBitstring(basisState int, measurements []Gate, numCBits int) string {
	bits := make([]byte, numCBits)
	for i := range bits {
		bits[i] = '0'
	}
	for _, m := range measurements {
		if basisState&(1<<m.Target) != 0 {
			bits[numCBits-1-m.CBit] = '1'
		}
	}
	return string(bits)
}
