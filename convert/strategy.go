package convert

import "fmt"

// Strategy is a way of converting a foreign string into a Go string.
type Strategy int

// A list of supported strategies.
const (
	// BorrowStrategy reads a borrowed view without an autorelease pool.
	// It leaks the temporary backing the view and exists as a baseline.
	BorrowStrategy Strategy = iota

	// AutoreleaseStrategy copies a borrowed view inside an autorelease pool.
	AutoreleaseStrategy

	// BufferStrategy fills an owned buffer through getCString.
	BufferStrategy
)

var validStrategies = []Strategy{
	BorrowStrategy,
	AutoreleaseStrategy,
	BufferStrategy,
}

// ValidStrategies returns the list of valid strategies.
func ValidStrategies() []Strategy {
	return validStrategies
}

func (s Strategy) String() string {
	switch s {
	case BorrowStrategy:
		return "borrow"
	case AutoreleaseStrategy:
		return "autorelease"
	case BufferStrategy:
		return "buffer"
	}
	return "unknown"
}

// ParseStrategy parses a strategy from its string form.
func ParseStrategy(str string) (Strategy, error) {
	for _, valid := range validStrategies {
		if valid.String() == str {
			return valid, nil
		}
	}
	return 0, fmt.Errorf("invalid strategy %s, valid strategies are %v", str, validStrategies)
}

// UnmarshalYAML unmarshals a strategy from its string form.
func (s *Strategy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	parsed, err := ParseStrategy(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
