package utils

import (
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer of OHLCV bars. It backs the
// per-subscription rolling window: capacity equals the lookback bars, so
// appending a fresh point silently evicts the stalest one.
// -----------------------------------------------------------------------------

type RingBuffer struct {
	// Data storage as 2D slice (rows x features)
	data     [][models.RB_NUM_FEATURES]float64
	symbol   string
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer(symbol string, capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 120 // Default lookback
	}

	return &RingBuffer{
		data:     make([][models.RB_NUM_FEATURES]float64, capacity),
		symbol:   symbol,
		capacity: capacity,
		index:    0,
		size:     0,
	}
}

// -----------------------------------------------------------------------------

// Append adds a price point, evicting the oldest when full.
func (rb *RingBuffer) Append(point models.MPricePoint) {
	rb.data[rb.index] = [models.RB_NUM_FEATURES]float64{
		float64(point.Timestamp),
		point.Open,
		point.High,
		point.Low,
		point.Close,
		point.Volume,
	}

	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// Series returns the window contents in insertion order (oldest to newest)
// as a price series ready for the analytics engine.
func (rb *RingBuffer) Series() models.MPriceSeries {
	points := make([]models.MPricePoint, rb.size)

	// Calculate start index (oldest element)
	startIdx := 0
	if rb.size == rb.capacity {
		// Buffer is full, oldest is at current index (wrap-around)
		startIdx = rb.index
	}

	for i := 0; i < rb.size; i++ {
		row := rb.data[(startIdx+i)%rb.capacity]
		points[i] = models.MPricePoint{
			Symbol:    rb.symbol,
			Timestamp: int64(row[models.RB_IDX_TIMESTAMP]),
			Open:      row[models.RB_IDX_OPEN],
			High:      row[models.RB_IDX_HIGH],
			Low:       row[models.RB_IDX_LOW],
			Close:     row[models.RB_IDX_CLOSE],
			Volume:    row[models.RB_IDX_VOLUME],
		}
	}

	return models.MPriceSeries{Symbol: rb.symbol, Points: points}
}

// -----------------------------------------------------------------------------

// Latest returns the most recently appended point and whether one exists.
func (rb *RingBuffer) Latest() (models.MPricePoint, bool) {
	if rb.size == 0 {
		return models.MPricePoint{}, false
	}

	idx := (rb.index - 1 + rb.capacity) % rb.capacity
	row := rb.data[idx]

	return models.MPricePoint{
		Symbol:    rb.symbol,
		Timestamp: int64(row[models.RB_IDX_TIMESTAMP]),
		Open:      row[models.RB_IDX_OPEN],
		High:      row[models.RB_IDX_HIGH],
		Low:       row[models.RB_IDX_LOW],
		Close:     row[models.RB_IDX_CLOSE],
		Volume:    row[models.RB_IDX_VOLUME],
	}, true
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *RingBuffer) Size() int {
	return rb.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity (fixed)
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// -----------------------------------------------------------------------------

// IsFull returns whether buffer is full
func (rb *RingBuffer) IsFull() bool {
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *RingBuffer) Clear() {
	rb.index = 0
	rb.size = 0
}
