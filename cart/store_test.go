package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreIsolatesUsers(t *testing.T) {
	st := NewStore()

	st.With("alice", func(s *State) {
		require.NoError(t, s.AddItem(Line{ID: "p1", Name: "Kale", UnitPrice: 3, Quantity: 2}))
	})
	st.With("bob", func(s *State) {
		assert.Empty(t, s.Lines())
	})
	st.With("alice", func(s *State) {
		assert.Len(t, s.Lines(), 1)
	})
}

func TestStoreDrop(t *testing.T) {
	st := NewStore()

	st.With("alice", func(s *State) {
		require.NoError(t, s.AddItem(Line{ID: "p1", Name: "Kale", UnitPrice: 3, Quantity: 2}))
		s.SetDeliveryCost(5)
	})

	st.Drop("alice")

	// next access starts from the defaults again
	st.With("alice", func(s *State) {
		assert.Empty(t, s.Lines())
		assert.Equal(t, DeliveryPickup, s.DeliveryOption())
		assert.Equal(t, 0.0, s.DeliveryCost())
	})
}

func TestStoreConcurrentAdds(t *testing.T) {
	st := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.With("alice", func(s *State) {
				_ = s.AddItem(Line{ID: "p1", Name: "Kale", UnitPrice: 3, Quantity: 1})
			})
		}()
	}
	wg.Wait()

	st.With("alice", func(s *State) {
		lines := s.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 50, lines[0].Quantity)
	})
}
