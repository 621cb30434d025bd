package pattern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCache_CompilesOnce(t *testing.T) {
	c := NewCache[uint8]()

	p1, err := c.Get("11aabb00")
	require.NoError(t, err)
	p2, err := c.Get("11aabb00")
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ModesAreSeparate(t *testing.T) {
	var c Cache[uint8]

	st, err := c.Get("1?aa0000")
	require.NoError(t, err)
	dy := c.GetDynamic("1?aa0000")

	assert.NotSame(t, st, dy)
	assert.True(t, dy.Dynamic())
	assert.Same(t, dy, c.GetDynamic("1?aa0000"))
	assert.Equal(t, 2, c.Len())
}

func TestCache_ErrorsNotCached(t *testing.T) {
	c := NewCache[uint16]()

	_, err := c.Get("0101")
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache[uint32]()
	texts := []string{
		"0000aaaa????????bbbbbbbb11111111",
		"1111aaaa????????bbbbbbbb00000000",
		"????????????????????????????????",
	}

	var wg sync.WaitGroup
	results := make([][]*Pattern[uint32], 16)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, text := range texts {
				p, err := c.Get(text)
				if err != nil {
					t.Error(err)
					return
				}
				results[g] = append(results[g], p)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, len(texts), c.Len())
	for g := 1; g < len(results); g++ {
		for i := range texts {
			assert.Same(t, results[0][i], results[g][i])
		}
	}
}

func TestCache_LogsCompiles(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	c := NewCache[uint8]()
	_, _ = c.Get("11aabb00")
	_, _ = c.Get("11aabb00")
	_, _ = c.Get("short")

	compiled := logs.FilterMessage("pattern compiled").All()
	require.Len(t, compiled, 1)
	assert.Equal(t, "11aabb00", compiled[0].ContextMap()["pattern"])
	assert.Equal(t, int64(2), compiled[0].ContextMap()["fields"])
	assert.Len(t, logs.FilterMessage("pattern compile failed").All(), 1)
}
