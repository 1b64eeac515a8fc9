package slip10

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// pathRegex matches the accepted grammar: "m" followed by one or more
// hardened segments. ed25519 derivation is hardened-only, so the trailing
// apostrophe is mandatory on every segment.
var pathRegex = regexp.MustCompile(`^m(/[0-9]+')+$`)

// DerivationPath is an ordered sequence of raw (pre-hardening) segment
// values, root to leaf. ParsePath validates everything up front, so a
// DerivationPath value needs no further checks downstream.
type DerivationPath []uint32

// ParsePath validates and tokenizes a derivation path string such as
// "m/44'/501'/0'/0'". Segment values must be below the conventional
// hardening offset 0x80000000 so the offset addition cannot wrap a uint32.
// All failures wrap ErrInvalidPath; no partial result is returned.
func ParsePath(path string) (DerivationPath, error) {
	if !pathRegex.MatchString(path) {
		return nil, fmt.Errorf("parse path %q: must match m/<index>'/... with every segment hardened: %w", path, ErrInvalidPath)
	}

	parts := strings.Split(path[2:], "/")
	segments := make(DerivationPath, 0, len(parts))

	for _, part := range parts {
		digits := strings.TrimSuffix(part, "'")

		v, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse path %q: segment %q: %w", path, part, ErrInvalidPath)
		}
		if v >= uint64(DefaultHardenedOffset) {
			return nil, fmt.Errorf("parse path %q: segment %q exceeds maximum index %d: %w", path, part, DefaultHardenedOffset-1, ErrInvalidPath)
		}

		segments = append(segments, uint32(v))
	}

	return segments, nil
}

// String renders the path back in its canonical form, "m/44'/501'/0'/0'".
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteByte('m')
	for _, v := range p {
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(v), 10))
		b.WriteByte('\'')
	}
	return b.String()
}
