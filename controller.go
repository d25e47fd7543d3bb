package spindle

import (
	"io"
	"time"

	"github.com/bangzek/clock"
)

const (
	// SettleDelay is held after enabling the driver, before the first byte.
	SettleDelay = time.Millisecond
	// FrameDelay is the silence kept after every frame, well above the 3.5
	// characters of RTU.
	FrameDelay = 50 * time.Millisecond
)

type nower interface {
	Now() time.Time
}

var (
	ctime nower = clock.New()
	sleep       = time.Sleep
)

type PortOpener interface {
	Open(bool) (Port, time.Duration, error)
}

// Controller runs one command at a time over a half duplex link. It is not
// safe for concurrent use.
//
// With zero Timeout a missing response blocks Send forever. Verify checks the
// response CRC and stops reading as soon as a complete response is in.
type Controller struct {
	Port    PortOpener
	Timeout time.Duration
	Verify  bool

	port     Port
	byteTime time.Duration
	repeat   bool
}

func (c *Controller) Close() {
	if c.port != nil {
		c.port.Close()
		c.port = nil
	}
}

func (c *Controller) Send(cmd Cmd) error {
	if c.port == nil {
		var err error
		c.port, c.byteTime, err = c.Port.Open(c.repeat)
		if err != nil {
			c.port = nil
			c.repeat = true
			return err
		}
		c.repeat = false
	}

	rx := cmd.RxBytes()
	if cap(*rx) > 0 {
		if err := c.drain(); err != nil {
			c.Close()
			return err
		}
	}

	if err := c.transmit(cmd); err != nil {
		c.Close()
		return err
	}

	if cap(*rx) == 0 {
		return nil
	}

	sleep(ceilMs(time.Duration(cap(*rx)) * c.byteTime))
	if err := c.receive(cmd); err != nil {
		c.Close()
		return err
	}
	return cmd.Err()
}

// drain throws away whatever an earlier exchange left in the receive buffer.
func (c *Controller) drain() error {
	var b [64]byte
	for {
		n, err := c.port.Read(b[:])
		if err != nil {
			return err
		} else if n == 0 {
			return nil
		}
		debugLog("drop: % X", b[:n])
	}
}

func (c *Controller) transmit(cmd Cmd) error {
	tx := cmd.TxBytes()
	debugLog("tx: % X", tx)
	debugLog("TX: %s", cmd.Tx())

	if err := c.port.Set(); err != nil {
		return err
	}
	sleep(SettleDelay)
	if n, err := c.port.Write(tx); err != nil {
		return err
	} else if n != len(tx) {
		return io.ErrShortWrite
	}
	// the UART must be done shifting out before the driver is released
	sleep(ceilMs(time.Duration(len(tx)) * c.byteTime))
	if err := c.port.Clear(); err != nil {
		return err
	}
	sleep(FrameDelay)
	return nil
}

func (c *Controller) receive(cmd Cmd) error {
	rx := cmd.RxBytes()
	*rx = (*rx)[:0]

	var deadline time.Time
	if c.Timeout > 0 {
		deadline = ctime.Now().Add(c.Timeout)
	}
	for len(*rx) < cap(*rx) {
		n, err := c.port.Read((*rx)[len(*rx):cap(*rx)])
		*rx = (*rx)[:len(*rx)+n]
		if err != nil {
			return err
		}
		if c.Verify && n > 0 && cmd.IsValidRx() {
			break
		}
		if n == 0 && c.Timeout > 0 && ctime.Now().After(deadline) {
			return ErrTimeout
		}
	}

	debugLog("rx: % X", *rx)
	if c.Verify {
		if !cmd.IsValidRx() {
			return BadRxErr(*rx)
		}
		debugLog("RX: %s", cmd.Rx())
	}
	return nil
}

// ceilMs rounds d up to whole milliseconds.
func ceilMs(d time.Duration) time.Duration {
	return (d + time.Millisecond - 1).Truncate(time.Millisecond)
}
