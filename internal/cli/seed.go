package cli

import (
	"fmt"
	"strconv"
	"time"
)

const defaultTick = 100 * time.Millisecond

// parseSeed reads the -seed flag; an empty value leaves seeds untouched.
func parseSeed(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: must be an integer", s)
	}
	return &seed, nil
}
