package atlas

import "fmt"

const (
	// PageSize is the width and height of every page texture in pixels.
	PageSize = 1024

	// BlockSize is the number of consecutive code points held by a page.
	BlockSize = 256

	// MaxBlock is the highest block id addressable in BlockModeUnicode.
	MaxBlock BlockID = 0x10FFFF >> 8

	// MaxLegacyBlock is the highest block id addressable in BlockModeLegacy.
	MaxLegacyBlock BlockID = 0xFF
)

// BlockID identifies a page: code point >> 8.
type BlockID uint32

// First returns the lowest code point of the block.
func (b BlockID) First() rune {
	return rune(b) << 8
}

// Contains reports whether cp belongs to the block.
func (b BlockID) Contains(cp rune) bool {
	return cp >= b.First() && cp < b.First()+BlockSize
}

// String returns the block range, e.g. "U+0400..U+04FF".
func (b BlockID) String() string {
	return fmt.Sprintf("U+%04X..U+%04X", b.First(), b.First()+BlockSize-1)
}

// BlockMode selects how code points are routed to blocks.
type BlockMode uint8

const (
	// BlockModeUnicode routes every code point to block cp >> 8.
	BlockModeUnicode BlockMode = iota

	// BlockModeLegacy routes cp to (cp >> 8) & 0xFF. Only the Basic
	// Multilingual Plane is addressable, text is walked as UTF-16 code units.
	BlockModeLegacy
)

// String returns the mode name.
func (m BlockMode) String() string {
	switch m {
	case BlockModeUnicode:
		return "unicode"
	case BlockModeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("BlockMode(%d)", m)
	}
}

// MaxBlock returns the highest block id a lookup can route to in mode m.
func (m BlockMode) MaxBlock() BlockID {
	if m == BlockModeLegacy {
		return MaxLegacyBlock
	}
	return MaxBlock
}

// BlockOf returns the block holding cp in the given mode.
func BlockOf(cp rune, mode BlockMode) BlockID {
	if cp < 0 {
		cp = 0
	}
	if mode == BlockModeLegacy {
		return BlockID(cp>>8) & 0xFF
	}
	return BlockID(cp >> 8)
}
