package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	require.Equal(t, 1, PageCount(0, 10))
	require.Equal(t, 1, PageCount(10, 10))
	require.Equal(t, 2, PageCount(11, 10))
	require.Equal(t, 3, PageCount(25, 10))
	require.Equal(t, 1, PageCount(5, 0))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	require.Equal(t, []int{1, 2}, Slice(items, 1, 2))
	require.Equal(t, []int{3, 4}, Slice(items, 2, 2))
	require.Equal(t, []int{5}, Slice(items, 3, 2))
	require.Nil(t, Slice(items, 4, 2))

	// Page numbers below 1 clamp to the first page
	require.Equal(t, []int{1, 2}, Slice(items, 0, 2))

	// Size 0 disables pagination
	require.Equal(t, items, Slice(items, 1, 0))
}
