package main

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// Host owns the SDL window and drives the emulator at the tick rate.
type Host struct {
	Emulator *emulator.Emulator
	Scale    int32

	window  *sdl.Window
	surface *sdl.Surface
}

// Setup initialises SDL and creates the main window.
func (host *Host) Setup(title string) (err error) {
	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return
	}

	host.window, err = sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		io.DISPLAY_WIDTH*host.Scale, io.DISPLAY_HEIGHT*host.Scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return
	}

	host.surface, err = host.window.GetSurface()
	if err != nil {
		return
	}

	host.surface.FillRect(nil, screenColor)
	host.window.UpdateSurface()

	return
}

// Destroy should be called before quitting the application.
func (host *Host) Destroy() {
	if host.window != nil {
		host.window.Destroy()
	}
	sdl.Quit()
}

// Run is the main application loop: pump input events, run one
// emulator tick per 60Hz period, and repaint the display.
func (host *Host) Run() (err error) {
	period := time.Second / emulator.TICK_HZ
	last := time.Now()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch t := event.(type) {
			case *sdl.KeyboardEvent:
				if t.Repeat != 0 {
					// Auto-repeat is not a fresh press.
					continue
				}
				if t.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					return
				}
				key, ok := keymap(t.Keysym.Scancode)
				if !ok {
					continue
				}
				err = host.Emulator.Keypad.SetKey(key, t.GetType() == sdl.KEYDOWN)
				if err != nil {
					return
				}

			case *sdl.QuitEvent:
				return
			}
		}

		if time.Since(last) >= period {
			last = last.Add(period)

			err = host.Emulator.Tick()
			if err != nil {
				return
			}

			err = host.draw()
			if err != nil {
				return
			}
		}

		sdl.Delay(1)
	}
}

// draw repaints the full pixel grid.
func (host *Host) draw() (err error) {
	err = host.surface.FillRect(nil, screenColor)
	if err != nil {
		return
	}

	display := host.Emulator.Display
	for y := int32(0); y < io.DISPLAY_HEIGHT; y++ {
		for x := int32(0); x < io.DISPLAY_WIDTH; x++ {
			if !display.Pixel(int(x), int(y)) {
				continue
			}
			rect := &sdl.Rect{
				X: x * host.Scale,
				Y: y * host.Scale,
				W: host.Scale,
				H: host.Scale,
			}
			err = host.surface.FillRect(rect, spriteColor)
			if err != nil {
				return
			}
		}
	}

	return host.window.UpdateSurface()
}

// keymap maps a QWERTY keyboard to the CHIP-8 keypad:
//
//	+--------+--------+--------+--------+
//	| 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
//	+--------+--------+--------+--------+
//	| Q -> 4 | W -> 5 | E -> 6 | R -> D |
//	+--------+--------+--------+--------+
//	| A -> 7 | S -> 8 | D -> 9 | F -> E |
//	+--------+--------+--------+--------+
//	| Z -> A | X -> 0 | C -> B | V -> F |
//	+--------+--------+--------+--------+
func keymap(code sdl.Scancode) (key uint8, ok bool) {
	ok = true

	switch code {
	case sdl.SCANCODE_1:
		key = 0x1
	case sdl.SCANCODE_2:
		key = 0x2
	case sdl.SCANCODE_3:
		key = 0x3
	case sdl.SCANCODE_4:
		key = 0xC
	case sdl.SCANCODE_Q:
		key = 0x4
	case sdl.SCANCODE_W:
		key = 0x5
	case sdl.SCANCODE_E:
		key = 0x6
	case sdl.SCANCODE_R:
		key = 0xD
	case sdl.SCANCODE_A:
		key = 0x7
	case sdl.SCANCODE_S:
		key = 0x8
	case sdl.SCANCODE_D:
		key = 0x9
	case sdl.SCANCODE_F:
		key = 0xE
	case sdl.SCANCODE_Z:
		key = 0xA
	case sdl.SCANCODE_X:
		key = 0x0
	case sdl.SCANCODE_C:
		key = 0xB
	case sdl.SCANCODE_V:
		key = 0xF
	default:
		ok = false
	}

	return
}
