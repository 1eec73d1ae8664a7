package project

import (
	"crypto/sha256"
	"maps"
	"slices"
	"strconv"
)

// Digest - фиксированный 256 битный хеш.
type Digest [32]byte

// Combine строит составной хеш: H( content || part1 || part2 ... ).
// Порядок parts должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint hashes every setting that can change analysis output.
// Logging and colour do not take part.
func (c *Config) Fingerprint() Digest {
	h := sha256.New()
	write := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	write(strconv.Itoa(c.Analysis.MaxDiagnostics))
	write(strconv.Itoa(c.Analysis.MaxTokenLen))
	for _, module := range slices.Sorted(maps.Keys(c.Modules)) {
		write("module:" + module)
		for _, exp := range c.Modules[module] {
			write(exp.Name)
			write(exp.Signature)
		}
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
