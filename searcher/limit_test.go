package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimitEffective(t *testing.T) {
	t.Run("zero value searches the default node budget", func(t *testing.T) {
		require.Equal(t, Limit{Nodes: DefaultNodes}, Limit{}.effective())
	})

	t.Run("keeps explicit budgets untouched", func(t *testing.T) {
		limit := Limit{Time: 50 * time.Millisecond}
		require.Equal(t, limit, limit.effective())

		limit = Limit{Nodes: 128}
		require.Equal(t, limit, limit.effective())

		limit = Limit{Time: time.Second, Nodes: 64}
		require.Equal(t, limit, limit.effective())
	})
}
