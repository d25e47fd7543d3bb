package spindle

import (
	"io"
	"time"

	"github.com/albenik/go-serial/v2"
)

const (
	SERIAL_TIMEOUT = 30 * time.Millisecond
	BAUDRATE       = 9600
)

// Port is a serial channel together with the direction line of its
// transceiver.
type Port interface {
	io.ReadWriteCloser
	Line
}

type port struct {
	io.ReadWriteCloser
	Line
}

// NewPort pairs a byte channel with the line that switches its direction.
func NewPort(rwc io.ReadWriteCloser, dir Line) Port {
	if dir == nil {
		dir = NopLine{}
	}
	return port{rwc, dir}
}

type OpenErr struct {
	Dev string
	Err error
}

func (e OpenErr) Error() string {
	return e.Err.Error() + " while opening " + e.Dev
}

func (e OpenErr) Unwrap() error {
	return e.Err
}

// ByteTime is how long one RTU character (start, 8 data, parity or second
// stop, stop) takes on the wire.
func ByteTime(baudrate int) time.Duration {
	return time.Duration(11 * int64(time.Second) / int64(baudrate))
}

// SerialPort opens a local serial device.
//
// Timeout is the read timeout of the device; a read that sees no byte within
// it returns nothing, which is what ends the draining of stale bytes.
// ByteTime defaults to ByteTime(Baudrate).
type SerialPort struct {
	Dev      string
	Timeout  time.Duration
	Baudrate int
	Parity   Parity
	Dir      DirMode
	ByteTime time.Duration
}

func (p *SerialPort) Open(repeat bool) (Port, time.Duration, error) {
	if p.Dev == "" {
		panic("empty SerialPort.Dev")
	}
	if p.Timeout <= 0 {
		p.Timeout = SERIAL_TIMEOUT
	}
	if p.Baudrate <= 0 {
		p.Baudrate = BAUDRATE
	}
	if p.ByteTime <= 0 {
		p.ByteTime = ByteTime(p.Baudrate)
	}

	if repeat {
		debugLog("Opening %s", p.Dev)
	} else {
		log("Opening %s", p.Dev)
	}
	sp, err := serial.Open(p.Dev,
		serial.WithBaudrate(p.Baudrate),
		serial.WithParity(serial.Parity(p.Parity)),
		serial.WithReadTimeout(int(p.Timeout.Milliseconds())),
		serial.WithWriteTimeout(int(p.Timeout.Milliseconds())))
	if err != nil {
		return nil, p.ByteTime, OpenErr{p.Dev, err}
	}

	line := p.Dir.line(sp)
	if err := line.Clear(); err != nil {
		sp.Close()
		return nil, p.ByteTime, OpenErr{p.Dev, err}
	}
	log("%s opened, %d %s, dir %s", p.Dev, p.Baudrate, p.Parity, p.Dir)
	return port{sp, line}, p.ByteTime, nil
}
