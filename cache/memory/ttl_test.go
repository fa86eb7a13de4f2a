package memory

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLExpiry(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	c, err := NewTTLCache(2, time.Hour)
	assert.Nil(t, err)
	c.SetNowFunc(func() time.Time { return clock })

	c.Set("a", 1)
	value, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)

	clock = clock.Add(time.Hour)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUBound(t *testing.T) {
	c, _ := NewTTLCache(2, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestGetOrLoad(t *testing.T) {
	c, _ := NewTTLCache(0, time.Hour)
	var loads int32
	load := func() (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return "value", nil
	}

	value, err := c.GetOrLoad("k", false, load)
	assert.Nil(t, err)
	assert.Equal(t, "value", value)

	value, _ = c.GetOrLoad("k", false, load)
	assert.Equal(t, "value", value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	_, _ = c.GetOrLoad("k", true, load)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))

	_, err = c.GetOrLoad("e", false, func() (interface{}, error) {
		return nil, errors.New("upstream down")
	})
	assert.NotNil(t, err)
	_, ok := c.Get("e")
	assert.False(t, ok)
}

func TestGetOrLoadCollapsesConcurrentMisses(t *testing.T) {
	c, _ := NewTTLCache(0, time.Hour)
	var loads int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := c.GetOrLoad("k", false, func() (interface{}, error) {
				atomic.AddInt32(&loads, 1)
				<-release
				return "value", nil
			})
			assert.Nil(t, err)
			assert.Equal(t, "value", value)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}
