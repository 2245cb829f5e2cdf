package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestParseStrategy(t *testing.T) {
	for _, strategy := range ValidStrategies() {
		parsed, err := ParseStrategy(strategy.String())
		require.NoError(t, err)
		require.Equal(t, strategy, parsed)
	}
	_, err := ParseStrategy("vec")
	require.Error(t, err)
}

func TestStrategyUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Strategies []Strategy        `yaml:"strategies"`
		Policy     InvalidUTF8Policy `yaml:"policy"`
	}
	input := []byte("strategies: [borrow, autorelease, buffer]\npolicy: reject\n")
	require.NoError(t, yaml.Unmarshal(input, &cfg))
	require.Equal(t, []Strategy{BorrowStrategy, AutoreleaseStrategy, BufferStrategy}, cfg.Strategies)
	require.Equal(t, RejectInvalidUTF8, cfg.Policy)

	require.Error(t, yaml.Unmarshal([]byte("strategies: [old]\n"), &cfg))
	require.Error(t, yaml.Unmarshal([]byte("policy: ignore\n"), &cfg))
}
