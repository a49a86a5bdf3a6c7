package engine

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Trigger lines on the DLP-IO8-G.
const (
	LineTrialOnset = "1"
	LineResponse   = "2"
)

// DLPIO8G drives the digital lines of a DLP-IO8-G USB box, used to mark
// trial onsets in simultaneously recorded data.
type DLPIO8G struct {
	port io.ReadWriteCloser
}

func NewDLPIO8G(device string, baudrate int) (*DLPIO8G, error) {
	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(time.Second); err != nil {
		port.Close()
		return nil, err
	}
	return newDLP(port)
}

func newDLP(port io.ReadWriteCloser) (*DLPIO8G, error) {
	d := &DLPIO8G{port: port}
	if !d.Ping() {
		port.Close()
		return nil, fmt.Errorf("device did not respond to ping correctly")
	}

	// Binary mode
	if _, err := port.Write([]byte{0x5C}); err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

func (d *DLPIO8G) Close() {
	if d.port != nil {
		d.port.Close()
	}
}

func (d *DLPIO8G) Ping() bool {
	if _, err := d.port.Write([]byte{0x27}); err != nil {
		return false
	}

	buf := make([]byte, 1)
	n, err := d.port.Read(buf)
	return err == nil && n == 1 && buf[0] == 'Q'
}

// Set raises the given lines, e.g. "13" for lines 1 and 3.
func (d *DLPIO8G) Set(lines string) error {
	if _, err := d.port.Write([]byte(lines)); err != nil {
		return fmt.Errorf("dlp set %s: %w", lines, err)
	}
	return nil
}

var unsetKeys = map[byte]byte{
	'1': 'Q', '2': 'W', '3': 'E', '4': 'R',
	'5': 'T', '6': 'Y', '7': 'U', '8': 'I',
}

// Unset lowers the given lines.
func (d *DLPIO8G) Unset(lines string) error {
	cmd := []byte(lines)
	for i := range cmd {
		if k, ok := unsetKeys[cmd[i]]; ok {
			cmd[i] = k
		}
	}
	if _, err := d.port.Write(cmd); err != nil {
		return fmt.Errorf("dlp unset %s: %w", lines, err)
	}
	return nil
}

// Pulse raises lines, holds them for width and lowers them again.
func (d *DLPIO8G) Pulse(lines string, width time.Duration) error {
	if err := d.Set(lines); err != nil {
		return err
	}
	time.Sleep(width)
	return d.Unset(lines)
}
