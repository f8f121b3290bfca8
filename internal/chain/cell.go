package chain

import "fmt"

// maxCellBits is the TON limit on data bits per cell.
const maxCellBits = 1023

// Cell is a minimal TON cell builder: an append-only bit string plus up to
// four child references. It covers exactly what the mint message body needs.
type Cell struct {
	data   []byte
	bitLen int
	refs   []*Cell
}

func NewCell() *Cell {
	return &Cell{}
}

func (c *Cell) BitLen() int { return c.bitLen }

func (c *Cell) storeBit(bit uint64) {
	if c.bitLen%8 == 0 {
		c.data = append(c.data, 0)
	}
	if bit != 0 {
		c.data[c.bitLen/8] |= 1 << (7 - uint(c.bitLen%8))
	}
	c.bitLen++
}

// StoreUint appends the low `bits` bits of v, most significant first.
func (c *Cell) StoreUint(v uint64, bits int) error {
	if c.bitLen+bits > maxCellBits {
		return fmt.Errorf("cell overflow: %d+%d bits", c.bitLen, bits)
	}
	for i := bits - 1; i >= 0; i-- {
		c.storeBit((v >> uint(i)) & 1)
	}
	return nil
}

func (c *Cell) StoreBytes(b []byte) error {
	if c.bitLen+len(b)*8 > maxCellBits {
		return fmt.Errorf("cell overflow: %d+%d bits", c.bitLen, len(b)*8)
	}
	for _, by := range b {
		for i := 7; i >= 0; i-- {
			c.storeBit(uint64(by>>uint(i)) & 1)
		}
	}
	return nil
}

// StoreAddress appends an addr_std (workchain + 256-bit account id).
func (c *Cell) StoreAddress(workchain byte, account [32]byte) error {
	// addr_std$10 anycast:nothing$0
	if err := c.StoreUint(0b100, 3); err != nil {
		return err
	}
	if err := c.StoreUint(uint64(workchain), 8); err != nil {
		return err
	}
	return c.StoreBytes(account[:])
}

func (c *Cell) StoreRef(ref *Cell) error {
	if len(c.refs) >= 4 {
		return fmt.Errorf("cell ref overflow")
	}
	c.refs = append(c.refs, ref)
	return nil
}

// BOC serializes the cell tree as a bag-of-cells with a single root, no index
// and no checksum, which is what wallet connectors expect as a payload.
func (c *Cell) BOC() []byte {
	ordered := []*Cell{}
	index := map[*Cell]int{}
	var walk func(*Cell)
	walk = func(cell *Cell) {
		if _, seen := index[cell]; seen {
			return
		}
		index[cell] = len(ordered)
		ordered = append(ordered, cell)
		for _, r := range cell.refs {
			walk(r)
		}
	}
	walk(c)

	var body []byte
	for _, cell := range ordered {
		body = append(body, cell.serialize(index)...)
	}

	// b5ee9c72 magic, 1-byte ref size, 2-byte offset size.
	out := []byte{0xb5, 0xee, 0x9c, 0x72, 0x01, 0x02}
	out = append(out, byte(len(ordered)), 1, 0) // cells, roots, absent
	out = append(out, byte(len(body)>>8), byte(len(body)))
	out = append(out, 0) // root index
	return append(out, body...)
}

func (c *Cell) serialize(index map[*Cell]int) []byte {
	fullBytes := c.bitLen / 8
	usedBytes := (c.bitLen + 7) / 8

	out := []byte{byte(len(c.refs)), byte(fullBytes + usedBytes)}
	out = append(out, c.data[:usedBytes]...)
	if c.bitLen%8 != 0 {
		// Completion tag marks the end of a partial byte.
		out[len(out)-1] |= 1 << (7 - uint(c.bitLen%8))
	}
	for _, r := range c.refs {
		out = append(out, byte(index[r]))
	}
	return out
}
