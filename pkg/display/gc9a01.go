package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// GC9A01Config selects the SPI port and control pins for one panel.
type GC9A01Config struct {
	Port     string `yaml:"port"`   // spireg name, e.g. "SPI0.0"
	DCPin    string `yaml:"dc_pin"` // Data/command select, BCM name
	ResetPin string `yaml:"reset_pin"`
	SpeedHz  int64  `yaml:"speed_hz"`
}

// LeftEyeConfig returns the wiring for the left panel (SPI0 CE0).
func LeftEyeConfig() GC9A01Config {
	return GC9A01Config{Port: "SPI0.0", DCPin: "GPIO25", ResetPin: "GPIO27", SpeedHz: 40000000}
}

// RightEyeConfig returns the wiring for the right panel (SPI0 CE1).
func RightEyeConfig() GC9A01Config {
	return GC9A01Config{Port: "SPI0.1", DCPin: "GPIO24", ResetPin: "GPIO23", SpeedHz: 40000000}
}

// GC9A01 drives a 240x240 round LCD over SPI.
type GC9A01 struct {
	port spi.PortCloser
	conn spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut

	// Max bytes per SPI transaction; Linux spidev defaults cap at 4096.
	chunk int
}

// gc9a01Init is the panel vendor's power-on command sequence.
var gc9a01Init = []struct {
	cmd  byte
	data []byte
}{
	{0xEF, nil},
	{0xEB, []byte{0x14}},
	{0xFE, nil},
	{0xEF, nil},
	{0xEB, []byte{0x14}},
	{0x84, []byte{0x40}},
	{0x85, []byte{0xFF}},
	{0x86, []byte{0xFF}},
	{0x87, []byte{0xFF}},
	{0x88, []byte{0x0A}},
	{0x89, []byte{0x21}},
	{0x8A, []byte{0x00}},
	{0x8B, []byte{0x80}},
	{0x8C, []byte{0x01}},
	{0x8D, []byte{0x01}},
	{0x8E, []byte{0xFF}},
	{0x8F, []byte{0xFF}},
	{0xB6, []byte{0x00, 0x20}},
	{0x36, []byte{0x08}}, // BGR order
	{0x3A, []byte{0x05}}, // 16 bpp
	{0x90, []byte{0x08, 0x08, 0x08, 0x08}},
	{0xBD, []byte{0x06}},
	{0xBC, []byte{0x00}},
	{0xFF, []byte{0x60, 0x01, 0x04}},
	{0xC3, []byte{0x13}},
	{0xC4, []byte{0x13}},
	{0xC9, []byte{0x22}},
	{0xBE, []byte{0x11}},
	{0xE1, []byte{0x10, 0x0E}},
	{0xDF, []byte{0x21, 0x0C, 0x02}},
	{0xF0, []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{0xF1, []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{0xF2, []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{0xF3, []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{0xED, []byte{0x1B, 0x0B}},
	{0xAE, []byte{0x77}},
	{0xCD, []byte{0x63}},
	{0x70, []byte{0x07, 0x07, 0x04, 0x0E, 0x0F, 0x09, 0x07, 0x08, 0x03}},
	{0xE8, []byte{0x34}},
	{0x62, []byte{0x18, 0x0D, 0x71, 0xED, 0x70, 0x70, 0x18, 0x0F, 0x71, 0xEF, 0x70, 0x70}},
	{0x63, []byte{0x18, 0x11, 0x71, 0xF1, 0x70, 0x70, 0x18, 0x13, 0x71, 0xF3, 0x70, 0x70}},
	{0x64, []byte{0x28, 0x29, 0xF1, 0x01, 0xF1, 0x00, 0x07}},
	{0x66, []byte{0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00}},
	{0x67, []byte{0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98}},
	{0x74, []byte{0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00}},
	{0x98, []byte{0x3E, 0x07}},
	{0x35, nil}, // Tearing effect on
	{0x21, nil}, // Inversion on
	{0x11, nil}, // Sleep out
	{0x29, nil}, // Display on
}

// InitHost initializes the periph host drivers. Call once before
// opening any panel.
func InitHost() error {
	_, err := host.Init()
	return err
}

// OpenGC9A01 opens the SPI port, resets the panel and runs the init
// sequence. The panel is left on and cleared to black.
func OpenGC9A01(cfg GC9A01Config) (*GC9A01, error) {
	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi %s: %w", cfg.Port, err)
	}
	speed := cfg.SpeedHz
	if speed <= 0 {
		speed = 40000000
	}
	conn, err := port.Connect(physic.Frequency(speed)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect spi %s: %w", cfg.Port, err)
	}

	dc := gpioreg.ByName(cfg.DCPin)
	if dc == nil {
		port.Close()
		return nil, fmt.Errorf("gpio %s not found", cfg.DCPin)
	}
	rst := gpioreg.ByName(cfg.ResetPin)
	if rst == nil {
		port.Close()
		return nil, fmt.Errorf("gpio %s not found", cfg.ResetPin)
	}

	d := &GC9A01{port: port, conn: conn, dc: dc, rst: rst, chunk: 4096}
	if err := d.reset(); err != nil {
		port.Close()
		return nil, err
	}
	if err := d.initPanel(); err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

func (d *GC9A01) reset() error {
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("reset pin: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("reset pin: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("reset pin: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

func (d *GC9A01) initPanel() error {
	for _, step := range gc9a01Init {
		if err := d.command(step.cmd); err != nil {
			return err
		}
		if len(step.data) > 0 {
			if err := d.data(step.data); err != nil {
				return err
			}
		}
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

func (d *GC9A01) command(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.conn.Tx([]byte{cmd}, nil)
}

func (d *GC9A01) data(buf []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(buf) > 0 {
		n := len(buf)
		if n > d.chunk {
			n = d.chunk
		}
		if err := d.conn.Tx(buf[:n], nil); err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// setWindow addresses the full 240x240 panel for a memory write.
func (d *GC9A01) setWindow() error {
	if err := d.command(0x2A); err != nil {
		return err
	}
	if err := d.data([]byte{0x00, 0x00, 0x00, Width - 1}); err != nil {
		return err
	}
	if err := d.command(0x2B); err != nil {
		return err
	}
	if err := d.data([]byte{0x00, 0x00, 0x00, Height - 1}); err != nil {
		return err
	}
	return d.command(0x2C)
}

// Present writes one full RGB565 frame to the panel.
func (d *GC9A01) Present(frame []byte) error {
	if err := checkFrame(frame); err != nil {
		return err
	}
	if err := d.setWindow(); err != nil {
		return err
	}
	return d.data(frame)
}

// Close blanks the panel and releases the SPI port.
func (d *GC9A01) Close() error {
	blank := make([]byte, FrameSize)
	if err := d.Present(blank); err != nil {
		d.port.Close()
		return err
	}
	return d.port.Close()
}
