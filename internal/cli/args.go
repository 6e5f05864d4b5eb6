package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// Fixed diagnostics printed on stdout before exiting with status 1.
const (
	UsageMessage      = "Usage: invalid number of arguments"
	PathMessage       = "Error: incorrect file path"
	AllocationMessage = "Allocation failure: Failed to allocate new memory"
)

// ExitError carries a fixed message to print instead of the error text.
type ExitError struct {
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%v)", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(n int) error {
	return &ExitError{
		Message: UsageMessage,
		Err:     fmt.Errorf("%w: got %d arguments", domain.ErrInput, n),
	}
}

// TweetsArgs are the positional arguments of the tweets client:
// <seed> <tweet_count> <file_path> [max_words].
type TweetsArgs struct {
	Seed     uint32
	Count    int
	Path     string
	MaxWords int // <= 0 reads the whole file
}

// ParseTweetsArgs validates arity and parses the tweets arguments.
func ParseTweetsArgs(args []string) (TweetsArgs, error) {
	if len(args) < 3 || len(args) > 4 {
		return TweetsArgs{}, usageError(len(args))
	}
	in := TweetsArgs{
		Seed:  ParseSeed(args[0]),
		Count: ParseCount(args[1]),
		Path:  args[2],
	}
	if len(args) == 4 {
		in.MaxWords = ParseCount(args[3])
	}
	return in, nil
}

// SnakesArgs are the positional arguments of the snakes client:
// <seed> <walk_count>.
type SnakesArgs struct {
	Seed  uint32
	Count int
}

// ParseSnakesArgs validates arity and parses the snakes arguments.
func ParseSnakesArgs(args []string) (SnakesArgs, error) {
	if len(args) != 2 {
		return SnakesArgs{}, usageError(len(args))
	}
	return SnakesArgs{
		Seed:  ParseSeed(args[0]),
		Count: ParseCount(args[1]),
	}, nil
}

// ParseSeed reads an unsigned base-10 prefix of s. Garbage yields 0, a
// leading minus wraps around and overflow saturates before truncation
// to 32 bits.
func ParseSeed(s string) uint32 {
	neg, digits := splitNumber(s)
	var v uint64
	for _, d := range digits {
		digit := uint64(d - '0')
		if v > (math.MaxUint64-digit)/10 {
			return math.MaxUint32
		}
		v = v*10 + digit
	}
	if neg {
		v = -v
	}
	return uint32(v)
}

// ParseCount reads a signed base-10 prefix of s into a 64-bit long,
// saturating on overflow, then truncates it to 32 bits the way an int
// conversion of strtol does. Garbage yields 0.
func ParseCount(s string) int {
	neg, digits := splitNumber(s)
	var v int64
	for _, d := range digits {
		digit := int64(d - '0')
		if v > (math.MaxInt64-digit)/10 {
			if neg {
				v = math.MinInt64
			} else {
				v = math.MaxInt64
			}
			return int(int32(v))
		}
		v = v*10 + digit
	}
	if neg {
		v = -v
	}
	return int(int32(v))
}

// splitNumber skips leading white space and an optional sign, and returns
// the run of decimal digits that follows.
func splitNumber(s string) (bool, string) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return neg, s[:end]
}
