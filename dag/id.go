package dag

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// IOPattern renders the canonical I/O pattern a stable ID is hashed
// from: sorted "{category}__{name}" input tokens and output tokens,
// each comma-joined, concatenated as "inputs|outputs". Input list
// categories are normalized so that switching a module between a
// plain and a list subscriber of the same item does not change its
// identity.
func IOPattern(rec ModuleRecord, policy IncludePolicy) string {
	var inputs, outputs []string

	for category, items := range rec.Inputs {
		if !policy.Includes(category) {
			continue
		}
		normalized := category.Normalized()
		for _, item := range items {
			inputs = append(inputs, string(normalized)+"__"+item)
		}
	}
	for category, items := range rec.Outputs {
		if !policy.Includes(category) {
			continue
		}
		for _, item := range items {
			outputs = append(outputs, string(category)+"__"+item)
		}
	}

	// Sorted independently; declaration order must never leak into the ID.
	slices.Sort(inputs)
	slices.Sort(outputs)

	return strings.Join(inputs, ",") + "|" + strings.Join(outputs, ",")
}

// StableID derives the content-based identity of a module:
// "{name}_{hex}" where hex is the first 8 hexadecimal characters of
// the SHA-256 of the I/O pattern, parsed as an unsigned integer and
// re-rendered lowercase. The ID is a pure function of (name, typed
// I/O multiset); module position in the pipeline never affects it.
func StableID(rec ModuleRecord, policy IncludePolicy) string {
	pattern := IOPattern(rec, policy)
	sum := sha256.Sum256([]byte(pattern))
	digest := hex.EncodeToString(sum[:])

	// ParseUint cannot fail on 8 hex digits; the round-trip drops any
	// leading zeros, matching the historical ID format.
	val, err := strconv.ParseUint(digest[:8], 16, 64)
	if err != nil {
		panic(fmt.Sprintf("dag: malformed sha256 digest %q: %v", digest[:8], err))
	}
	return fmt.Sprintf("%s_%x", rec.Name, val)
}
