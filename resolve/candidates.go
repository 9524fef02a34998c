package resolve

import (
	"container/heap"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/speclib/isfdb"
)

// Candidate set sizing. Resolution runs are small; the Bloom filter is
// a cheap fast path in front of the exact set.
const (
	candidateSetCapacity = 1024
	candidateSetFPRate   = 0.01
)

// CandidateSet accumulates candidate stubs across search stages,
// deduplicated by URL and ordered by relevance tier (lower tier first,
// discovery order within a tier). Identical URLs emitted from different
// search stages count once: the first discovery wins, so a tier-0
// shortcut is never demoted by a later text-search hit.
// It is safe for concurrent use.
type CandidateSet struct {
	mu    sync.Mutex
	fast  *bloom.BloomFilter
	seen  map[string]bool
	queue *stubHeap
	next  int
}

// NewCandidateSet creates an empty CandidateSet.
func NewCandidateSet() *CandidateSet {
	h := &stubHeap{}
	heap.Init(h)
	return &CandidateSet{
		fast:  bloom.NewWithEstimates(candidateSetCapacity, candidateSetFPRate),
		seen:  make(map[string]bool),
		queue: h,
	}
}

// Add inserts a stub unless its URL was already added.
// Returns false for duplicates.
func (s *CandidateSet) Add(stub isfdb.Stub) bool {
	if stub.URL == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// A negative Bloom test means definitely unseen; a positive one
	// must be confirmed against the exact set, because a false
	// positive would silently drop a real candidate.
	if s.fast.TestString(stub.URL) && s.seen[stub.URL] {
		return false
	}
	s.fast.AddString(stub.URL)
	s.seen[stub.URL] = true

	heap.Push(s.queue, orderedStub{Stub: stub, seq: s.next})
	s.next++
	return true
}

// Pop returns the best remaining candidate.
// The bool result is false if the set is empty.
func (s *CandidateSet) Pop() (isfdb.Stub, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Len() == 0 {
		return isfdb.Stub{}, false
	}
	os, _ := heap.Pop(s.queue).(orderedStub)
	return os.Stub, true
}

// Len returns the number of queued candidates.
func (s *CandidateSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// orderedStub pairs a stub with its discovery sequence for stable
// ordering within a tier.
type orderedStub struct {
	isfdb.Stub
	seq int
}

// stubHeap implements heap.Interface. Lower relevance tiers pop first;
// ties preserve discovery order.
type stubHeap []orderedStub

func (h stubHeap) Len() int { return len(h) }

func (h stubHeap) Less(i, j int) bool {
	if h[i].Relevance != h[j].Relevance {
		return h[i].Relevance < h[j].Relevance
	}
	return h[i].seq < h[j].seq
}

func (h stubHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *stubHeap) Push(x any) {
	*h = append(*h, x.(orderedStub))
}

func (h *stubHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
