package grid

// Mask is a boolean raster with the same layout as Grid.
type Mask struct {
	Rows int
	Cols int
	Bits []bool
}

// NewMask creates an all-false mask.
func NewMask(rows, cols int) *Mask {
	return &Mask{Rows: rows, Cols: cols, Bits: make([]bool, rows*cols)}
}

// Get returns the bit at (row, col); false out of bounds.
func (m *Mask) Get(row, col int) bool {
	if row < 0 || col < 0 || row >= m.Rows || col >= m.Cols {
		return false
	}
	return m.Bits[row*m.Cols+col]
}

// Set sets the bit at (row, col). Out-of-bounds writes are ignored.
func (m *Mask) Set(row, col int, v bool) {
	if row < 0 || col < 0 || row >= m.Rows || col >= m.Cols {
		return
	}
	m.Bits[row*m.Cols+col] = v
}

// Count returns the number of set bits.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Fraction returns Count divided by the number of cells.
func (m *Mask) Fraction() float64 {
	if len(m.Bits) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Bits))
}
