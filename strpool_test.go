package benchplot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringPool(t *testing.T) {
	sp := NewStringPool()
	a := sp.Add("hashMap")
	b := sp.Add("treeMap")
	require.NotEqual(t, a, b)
	require.Equal(t, a, sp.Add("hashMap"))
	require.Equal(t, b, sp.Find("treeMap"))
	require.Equal(t, -1, sp.Find("list"))
	require.Equal(t, "treeMap", sp.Get(b))
	require.Equal(t, "--NA--", sp.Get(17))
	require.Equal(t, 2, sp.Len())
}

func TestStringPoolConcurrent(t *testing.T) {
	sp := NewStringPool()
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, s := range []string{"a", "b", "c", "a"} {
				sp.Get(sp.Add(s))
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 3, sp.Len())
}
