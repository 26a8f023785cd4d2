package physvis

import (
	"fmt"
	"sync"
)

// UniformBufferAlignment is WebGPU's minimum alignment for dynamic uniform
// buffer offsets.
const UniformBufferAlignment = 256

const maxFramesInFlight = 8

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

type slotState int

const (
	slotFree slotState = iota
	slotRecording
	slotInFlight
)

// FrameRing hands out per-frame uniform slots inside one GPU buffer. Each
// slot owns a disjoint, alignment-padded byte range, so the host never
// rewrites memory the GPU may still be reading for an earlier frame: a slot
// stays unavailable from Acquire until Complete.
type FrameRing struct {
	mu      sync.Mutex
	stride  uint64
	states  []slotState
	staging [][]byte
	next    int
}

func NewFrameRing(framesInFlight int, slotSize uint64) (*FrameRing, error) {
	if framesInFlight < 1 || framesInFlight > maxFramesInFlight {
		return nil, fmt.Errorf("frames in flight must be 1..%d, got %d", maxFramesInFlight, framesInFlight)
	}
	if slotSize == 0 {
		return nil, fmt.Errorf("slot size must be non-zero")
	}

	stride := alignUp(slotSize, UniformBufferAlignment)
	staging := make([][]byte, framesInFlight)
	for i := range staging {
		staging[i] = make([]byte, slotSize)
	}
	return &FrameRing{
		stride:  stride,
		states:  make([]slotState, framesInFlight),
		staging: staging,
	}, nil
}

// Stride is the aligned distance between consecutive slots.
func (r *FrameRing) Stride() uint64 { return r.stride }

// BufferSize is the size of the GPU buffer backing all slots.
func (r *FrameRing) BufferSize() uint64 { return r.stride * uint64(len(r.states)) }

// FrameSlot is one frame's staging area and its dynamic offset into the
// backing buffer.
type FrameSlot struct {
	Index  int
	Offset uint64
	ring   *FrameRing
}

// Acquire claims the next slot for recording. It fails if that slot is still
// in flight, which means the host is producing frames faster than the GPU
// retires them.
func (r *FrameRing) Acquire() (*FrameSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.next
	switch r.states[idx] {
	case slotInFlight:
		return nil, fmt.Errorf("frame slot %d still in flight", idx)
	case slotRecording:
		return nil, fmt.Errorf("frame slot %d already being recorded", idx)
	}
	r.states[idx] = slotRecording
	r.next = (idx + 1) % len(r.states)

	return &FrameSlot{
		Index:  idx,
		Offset: uint64(idx) * r.stride,
		ring:   r,
	}, nil
}

// Write stages a uniform block into the slot. Only valid while recording.
func (s *FrameSlot) Write(u *Uniforms) error {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()

	if s.ring.states[s.Index] != slotRecording {
		return fmt.Errorf("frame slot %d is not recording", s.Index)
	}
	data := u.Bytes()
	if len(data) != len(s.ring.staging[s.Index]) {
		return fmt.Errorf("uniform block is %d bytes, slot holds %d", len(data), len(s.ring.staging[s.Index]))
	}
	copy(s.ring.staging[s.Index], data)
	return nil
}

// StagedBytes returns the slot's staged data for upload.
func (s *FrameSlot) StagedBytes() []byte {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()
	return s.ring.staging[s.Index]
}

// Submit marks the slot as handed to the GPU.
func (s *FrameSlot) Submit() {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()
	if s.ring.states[s.Index] != slotRecording {
		panic(fmt.Sprintf("frame slot %d submitted while not recording", s.Index))
	}
	s.ring.states[s.Index] = slotInFlight
}

// Complete marks the slot's GPU reads as finished, making it reusable.
func (s *FrameSlot) Complete() {
	s.ring.mu.Lock()
	defer s.ring.mu.Unlock()
	s.ring.states[s.Index] = slotFree
}
