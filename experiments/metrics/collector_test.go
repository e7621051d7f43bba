package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting rounds and nodes from concurrent workers", func(t *testing.T) {
		c := NewCollector()
		c.Start(8)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 1000; j++ {
					c.AddRound()
					if j%2 == 0 {
						c.AddNode()
					}
				}
			}()
		}
		wg.Wait()
		c.SetStopReason("node budget")

		metric := c.Complete()
		require.Equal(t, 8, metric.Workers, "should report the worker count")
		require.Equal(t, 8000, metric.Rounds, "should count every round exactly once")
		require.Equal(t, 4000, metric.Nodes, "should count every node exactly once")
		require.Equal(t, "node budget", metric.StopReason)
		require.Positive(t, metric.Duration)
	})

	t.Run("restarting for a new search", func(t *testing.T) {
		c := NewCollector()
		c.Start(2)
		c.AddRound()
		c.AddNode()
		c.SetStopReason("time budget")

		c.Start(1)

		metric := c.Complete()
		require.Equal(t, 1, metric.Workers)
		require.Zero(t, metric.Rounds, "restart should reset the round count")
		require.Zero(t, metric.Nodes, "restart should reset the node count")
		require.Empty(t, metric.StopReason, "restart should clear the stop reason")
	})

	t.Run("keeping the last stop reason", func(t *testing.T) {
		c := NewCollector()
		c.Start(2)
		c.SetStopReason("time budget")
		c.SetStopReason("dominance")

		require.Equal(t, "dominance", c.Complete().StopReason)
	})
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start(4)
	c.AddRound()
	c.AddNode()
	c.SetStopReason("node budget")

	require.Equal(t, SearchMetric{}, c.Complete(), "dummy should record nothing")
}
