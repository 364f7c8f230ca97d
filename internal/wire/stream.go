package wire

import "github.com/starbridge/bridgeserver/internal/world"

// Parser is a single-writer byte-accumulating reassembler for the
// binary stream protocol (spec.md §4.3). Data arrives via Feed; Drain
// yields every complete framed packet currently buffered, resyncing on
// corruption one byte at a time.
type Parser struct {
	buf            []byte
	maxPacketBytes int
}

// NewParser returns a stream parser bounded by maxPacketBytes. A value
// of 0 uses world.DefaultMaxPacketSize.
func NewParser(maxPacketBytes int) *Parser {
	if maxPacketBytes <= 0 {
		maxPacketBytes = world.DefaultMaxPacketSize
	}
	return &Parser{maxPacketBytes: maxPacketBytes}
}

// Feed appends newly-read bytes to the parser's internal buffer.
func (p *Parser) Feed(data []byte) {
	p.buf = append(p.buf, data...)
}

// Drain extracts every complete packet currently in the buffer,
// resynchronizing on a bad magic prefix by discarding one byte at a
// time, and returns them in arrival order. It returns a non-nil error
// (and stops draining) on a framing failure that should close the
// connection: an impossible header length or an oversized packet
// (spec.md §4.3).
func (p *Parser) Drain() ([][]byte, error) {
	var out [][]byte
	for {
		if len(p.buf) < 8 {
			return out, nil
		}
		if !p.hasMagicPrefix() {
			p.buf = p.buf[1:]
			continue
		}
		total, err := p.peekTotalLength()
		if err != nil {
			return out, err
		}
		if total < world.HeaderSize {
			return out, &ErrFraming{"impossible header length"}
		}
		if total > p.maxPacketBytes {
			return out, &ErrFraming{"packet exceeds max size"}
		}
		if len(p.buf) < total {
			return out, nil
		}
		pkt := make([]byte, total)
		copy(pkt, p.buf[:total])
		p.buf = p.buf[total:]
		out = append(out, pkt)
	}
}

func (p *Parser) hasMagicPrefix() bool {
	if len(p.buf) < 4 {
		return false
	}
	r := &reader{data: p.buf[:4]}
	magic, _ := r.readUint32()
	return magic == world.WireMagic
}

func (p *Parser) peekTotalLength() (int, error) {
	if len(p.buf) < 8 {
		return 0, &ErrFraming{"short header for length peek"}
	}
	r := &reader{data: p.buf[4:8]}
	total, err := r.readUint32()
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// BufferedLen reports how many unconsumed bytes the parser is holding.
// Bounded by maxPacketBytes+1 by construction: step 2 of Drain discards
// one byte at a time whenever the buffer doesn't start with a valid,
// appropriately-sized header, so a non-aligned stream never grows the
// buffer past one byte beyond the largest packet Drain will accept.
func (p *Parser) BufferedLen() int { return len(p.buf) }
