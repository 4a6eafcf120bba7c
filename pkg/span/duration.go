package span

import (
	"time"
)

// Duration wraps time.Duration so it can round-trip through text-based
// config formats using the standard "100ms", "5s" notation.
type Duration struct {
	d time.Duration
}

func New(d time.Duration) Duration {
	return Duration{d: d}
}

func (d Duration) Duration() time.Duration {
	return d.d
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.d = v
	return nil
}
