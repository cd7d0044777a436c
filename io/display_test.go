package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay_Draw(t *testing.T) {
	assert := assert.New(t)

	d := &Display{}

	collision, err := d.Draw(0, 0, []byte{0b1010_0001})
	assert.NoError(err)
	assert.False(collision)

	assert.True(d.Pixel(0, 0))
	assert.False(d.Pixel(1, 0))
	assert.True(d.Pixel(2, 0))
	assert.True(d.Pixel(7, 0))
	assert.False(d.Pixel(0, 1))
}

func TestDisplay_Draw_Collision(t *testing.T) {
	assert := assert.New(t)

	d := &Display{}

	collision, err := d.Draw(4, 4, []byte{0xFF})
	assert.NoError(err)
	assert.False(collision)

	// Overlaps a single pixel at (11, 4).
	collision, err = d.Draw(11, 4, []byte{0x80})
	assert.NoError(err)
	assert.True(collision)
	assert.False(d.Pixel(11, 4))
}

func TestDisplay_Draw_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	d := &Display{}
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

	collision, err := d.Draw(10, 12, sprite)
	assert.NoError(err)
	assert.False(collision)

	// XOR is its own inverse: the identical draw clears every pixel
	// it set, and every overlap is a collision.
	collision, err = d.Draw(10, 12, sprite)
	assert.NoError(err)
	assert.True(collision)

	for y := range DISPLAY_HEIGHT {
		for x := range DISPLAY_WIDTH {
			assert.False(d.Pixel(x, y))
		}
	}
}

func TestDisplay_Draw_Wrap(t *testing.T) {
	assert := assert.New(t)

	d := &Display{}

	// A sprite at x=60 continues at x=0.
	collision, err := d.Draw(60, 0, []byte{0xFF})
	assert.NoError(err)
	assert.False(collision)

	assert.True(d.Pixel(60, 0))
	assert.True(d.Pixel(63, 0))
	assert.True(d.Pixel(0, 0))
	assert.True(d.Pixel(3, 0))
	assert.False(d.Pixel(4, 0))
}

func TestDisplay_Draw_WrapVertical(t *testing.T) {
	assert := assert.New(t)

	d := &Display{}

	collision, err := d.Draw(0, DISPLAY_HEIGHT-1, []byte{0x80, 0x80})
	assert.NoError(err)
	assert.False(collision)

	assert.True(d.Pixel(0, DISPLAY_HEIGHT-1))
	assert.True(d.Pixel(0, 0))
}

func TestDisplay_Draw_TooTall(t *testing.T) {
	assert := assert.New(t)

	d := &Display{}

	_, err := d.Draw(0, 0, make([]byte, SPRITE_ROWS+1))
	assert.ErrorIs(err, ErrSpriteTooTall)
}

func TestDisplay_Clear(t *testing.T) {
	assert := assert.New(t)

	d := &Display{}

	_, err := d.Draw(0, 0, []byte{0xFF, 0xFF})
	assert.NoError(err)
	assert.True(d.Pixel(0, 0))

	d.Clear()
	for y := range DISPLAY_HEIGHT {
		for x := range DISPLAY_WIDTH {
			assert.False(d.Pixel(x, y))
		}
	}
}
