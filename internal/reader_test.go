package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReaderTrackDependencyRecordsSources(t *testing.T) {
	r := NewReader(func() {})
	b := NewBehavior(ValueResult(1), nil, nil)
	ch := NewChannel()

	r.TrackDependency(b)
	r.TrackDependency(ch)
	r.TrackDependency(b) // re-reading the same source within one run is a no-op

	assert.Equal(t, 2, r.Dependencies.Cardinality())
	assert.True(t, r.Dependencies.Contains(b))
	assert.True(t, r.Dependencies.Contains(ch))
}

func TestReaderMemoIsLazyAndStable(t *testing.T) {
	r := NewReader(func() {})

	m1 := r.Memo()
	m2 := r.Memo()

	assert.Same(t, m1, m2, "Memo must not allocate a fresh table on every call")
}

func TestReaderNotEnqueuedInitially(t *testing.T) {
	r := NewReader(func() {})
	assert.False(t, r.Enqueued())
}
