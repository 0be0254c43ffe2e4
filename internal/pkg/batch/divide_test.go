package batch_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ammerola/seller-sync/internal/pkg/batch"
)

func TestDivide(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{name: "uneven_tail", items: []int{1, 2, 3, 4, 5}, size: 2, want: [][]int{{1, 2}, {3, 4}, {5}}},
		{name: "exact_fit", items: []int{1, 2, 3, 4}, size: 2, want: [][]int{{1, 2}, {3, 4}}},
		{name: "size_larger_than_input", items: []int{1, 2}, size: 100, want: [][]int{{1, 2}}},
		{name: "empty_input", items: []int{}, size: 3, want: nil},
		{name: "nil_input", items: nil, size: 3, want: nil},
		{name: "zero_size", items: []int{1, 2}, size: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(batch.Divide(tt.items, tt.size))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), batch.Count(len(tt.items), tt.size))
		})
	}
}

func TestDivide_IsRestartable(t *testing.T) {
	seq := batch.Divide([]string{"a", "b", "c"}, 2)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestDivide_StopsEarly(t *testing.T) {
	var seen [][]int
	for chunk := range batch.Divide([]int{1, 2, 3, 4, 5, 6}, 2) {
		seen = append(seen, chunk)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, seen)
}
