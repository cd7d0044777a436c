package io

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

const (
	DISPLAY_WIDTH  = 64 // Pixels per row.
	DISPLAY_HEIGHT = 32 // Pixels per column.
	SPRITE_WIDTH   = 8  // Sprites are always 8 pixels wide.
	SPRITE_ROWS    = 15 // Maximum sprite height in rows.
)

var _display_defines = map[string]string{
	"DISPLAY_WIDTH":  fmt.Sprintf("%v", DISPLAY_WIDTH),
	"DISPLAY_HEIGHT": fmt.Sprintf("%v", DISPLAY_HEIGHT),
	"SPRITE_ROWS":    fmt.Sprintf("%v", SPRITE_ROWS),
}

// Display is the monochrome pixel grid of the CHIP-8 machine.
//
// The grid is exposed for the host renderer to read; only Draw and
// Clear mutate it.
type Display struct {
	Pixels [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool
}

// Defines for the display
func (d *Display) Defines() iter.Seq2[string, string] {
	return maps.All(_display_defines)
}

// Reset clears all pixels.
func (d *Display) Reset() {
	for y := range d.Pixels {
		clear(d.Pixels[y][:])
	}
}

// Clear clears all pixels.
func (d *Display) Clear() {
	d.Reset()
}

// Pixel reports whether the pixel at (x, y) is set. Coordinates wrap
// modulo the display dimensions.
func (d *Display) Pixel(x, y int) bool {
	return d.Pixels[y%DISPLAY_HEIGHT][x%DISPLAY_WIDTH]
}

// Draw XOR-composites a sprite onto the grid at (x, y).
//
// Each byte of the sprite is one 8-pixel row, most significant bit
// leftmost. Coordinates wrap modulo the display dimensions. Returns
// collision true if any drawn pixel flipped an already-set pixel to
// unset. Sprites taller than SPRITE_ROWS are rejected.
func (d *Display) Draw(x, y uint8, sprite []byte) (collision bool, err error) {
	if len(sprite) > SPRITE_ROWS {
		err = ErrSpriteTooTall
		return
	}

	for row, bits := range sprite {
		py := (int(y) + row) % DISPLAY_HEIGHT
		for bit := range SPRITE_WIDTH {
			if bits&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % DISPLAY_WIDTH
			if d.Pixels[py][px] {
				collision = true
			}
			d.Pixels[py][px] = !d.Pixels[py][px]
		}
	}

	return
}

// String renders the grid with one rune per pixel, for debugging.
func (d *Display) String() (text string) {
	var sb strings.Builder
	for y := range d.Pixels {
		for x := range d.Pixels[y] {
			if d.Pixels[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
