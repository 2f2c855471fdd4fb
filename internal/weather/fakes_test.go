package weather_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/i474232898/weather-assistant/internal/weather"
)

// scriptedCompleter returns a canned reply per schema. A nil schema selects the
// free-text answer.
type scriptedCompleter struct {
	mu      sync.Mutex
	replies map[*weather.Schema]string
	answer  string
	err     error
	calls   []*weather.Schema
	prompts [][]weather.Message
}

func (c *scriptedCompleter) Complete(_ context.Context, messages []weather.Message, schema *weather.Schema) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, schema)
	c.prompts = append(c.prompts, messages)
	if c.err != nil {
		return "", c.err
	}
	if schema == nil {
		return c.answer, nil
	}
	reply, ok := c.replies[schema]
	if !ok {
		return "", errors.New("no scripted reply")
	}
	return reply, nil
}

// cityEmbedder places each text on one axis per known city it mentions.
type cityEmbedder struct {
	cities []string
	err    error
}

func (e *cityEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, len(e.cities))
		for j, city := range e.cities {
			if strings.Contains(t, city) {
				v[j] = 1
			}
		}
		out[i] = v
	}
	return out, nil
}
