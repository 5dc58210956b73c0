package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLock_SerializesSameKey(t *testing.T) {
	locks := New()
	counter := 0
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("session")
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()
	require.Equal(t, 50, counter)
	require.Zero(t, locks.Len())
}

func TestLock_IndependentKeys(t *testing.T) {
	locks := New()
	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b")
	require.Equal(t, 2, locks.Len())
	unlockA()
	unlockB()
	require.Zero(t, locks.Len())
}
