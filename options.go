package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/huffman-tree/internal/options"
)

// DefaultSymbolWidth is the fixed bit width per symbol that compression
// ratios are measured against unless WithSymbolWidth says otherwise.
const DefaultSymbolWidth = 8

type codecConfig struct {
	symbolWidth int
	roundTrip   bool
}

func defaultCodecConfig() codecConfig {
	return codecConfig{symbolWidth: DefaultSymbolWidth}
}

// Option configures a Codec.
type Option = options.Option[*codecConfig]

// WithSymbolWidth sets the fixed-width baseline, in bits per symbol, used by
// Stats.  It must be between 1 and 64.
func WithSymbolWidth(bits int) Option {
	return options.New(func(c *codecConfig) error {
		if bits < 1 || bits > 64 {
			return fmt.Errorf("%w: symbol width %d outside [1, 64]", ErrInvalidOption, bits)
		}
		c.symbolWidth = bits
		return nil
	})
}

// WithRoundTripCheck makes Codec.Encode decode its own output and compare it
// with the input before returning.
func WithRoundTripCheck(enabled bool) Option {
	return options.NoError(func(c *codecConfig) {
		c.roundTrip = enabled
	})
}
