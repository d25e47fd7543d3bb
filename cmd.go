package spindle

import (
	"fmt"
	"strconv"
)

const (
	FnReadHRegs byte = 0x03
	FnWriteRegs byte = 0x10
)

// DevAddr is the only address this driver talks to. The drive must be
// configured for it.
const DevAddr byte = 1

// ReadRxLen is how many bytes are read back after a ReadHRegCmd.
const ReadRxLen = 8

// Cmd is either a *WriteRegCmd or a *ReadHRegCmd.
type Cmd interface {
	TxBytes() []byte
	Addr() uint16
	Tx() string

	// RxBytes has zero capacity when no response is read.
	RxBytes() *[]byte
	IsValidRx() bool
	Rx() string
	Err() error

	String() string

	isCmd()
}

//----------------------------------------------------------------------

// WriteRegCmd writes a single register using "write multiple registers".
type WriteRegCmd struct {
	addr  uint16
	value uint16
	rx    []byte
}

func NewWriteRegCmd(addr uint16, value uint16) *WriteRegCmd {
	return &WriteRegCmd{addr: addr, value: value}
}

func (c *WriteRegCmd) isCmd() {}

func (c *WriteRegCmd) Frame() Frame {
	return Frame{
		Dev:   DevAddr,
		Fn:    FnWriteRegs,
		Addr:  c.addr,
		Count: 1,
		Data:  []uint16{c.value},
	}
}

func (c *WriteRegCmd) TxBytes() []byte {
	return c.Frame().Bytes()
}

func (c *WriteRegCmd) Addr() uint16 {
	return c.addr
}

func (c *WriteRegCmd) Reg() uint16 {
	return c.value
}

func (c *WriteRegCmd) SetReg(v uint16) {
	c.value = v
}

func (c *WriteRegCmd) RxBytes() *[]byte {
	return &c.rx
}

func (c *WriteRegCmd) IsValidRx() bool {
	return false
}

func (c *WriteRegCmd) Err() error {
	return nil
}

func (c *WriteRegCmd) Tx() string {
	b := make([]byte, 0, 24)
	b = strconv.AppendInt(b, int64(DevAddr), 10)
	b = append(b, "<-WR  "...)
	b = strconv.AppendInt(b, int64(c.addr), 10)
	b = append(b, ":1["...)
	b = appendReg(b, c.value)
	return string(append(b, ']'))
}

func (c *WriteRegCmd) Rx() string {
	return ""
}

func (c *WriteRegCmd) String() string {
	return c.Tx()
}

//----------------------------------------------------------------------

// ReadHRegCmd reads a single holding register.
type ReadHRegCmd struct {
	addr uint16
	rx   []byte
}

func NewReadHRegCmd(addr uint16) *ReadHRegCmd {
	return &ReadHRegCmd{
		addr: addr,
		rx:   make([]byte, 0, ReadRxLen),
	}
}

func (c *ReadHRegCmd) isCmd() {}

func (c *ReadHRegCmd) Frame() Frame {
	return Frame{
		Dev:   DevAddr,
		Fn:    FnReadHRegs,
		Addr:  c.addr,
		Count: 1,
	}
}

func (c *ReadHRegCmd) TxBytes() []byte {
	return c.Frame().Bytes()
}

func (c *ReadHRegCmd) Addr() uint16 {
	return c.addr
}

func (c *ReadHRegCmd) RxBytes() *[]byte {
	return &c.rx
}

// Reg returns the register value at offsets 3 and 4 of the response, or 0 if
// the response is shorter than that. Nothing else in the response is looked
// at.
func (c *ReadHRegCmd) Reg() uint16 {
	if len(c.rx) < 5 {
		return 0
	}
	return (uint16(c.rx[3]) << 8) | uint16(c.rx[4])
}

func (c *ReadHRegCmd) IsValidRx() bool {
	return c.isValidErr() ||
		(len(c.rx) == 7 && checksum(c.rx) &&
			c.rx[0] == DevAddr &&
			c.rx[1] == FnReadHRegs &&
			c.rx[2] == 2)
}

func (c *ReadHRegCmd) isValidErr() bool {
	return len(c.rx) == 5 && checksum(c.rx) &&
		c.rx[0] == DevAddr && c.rx[1] == FnReadHRegs|0x80
}

func (c *ReadHRegCmd) Err() error {
	if c.isValidErr() {
		return ModbusErr(c.rx[2])
	}
	return nil
}

func (c *ReadHRegCmd) Tx() string {
	b := make([]byte, 0, 16)
	b = strconv.AppendInt(b, int64(DevAddr), 10)
	b = append(b, "<-RHR "...)
	b = strconv.AppendInt(b, int64(c.addr), 10)
	return string(append(b, ":1"...))
}

func (c *ReadHRegCmd) Rx() string {
	if len(c.rx) < 5 {
		return fmt.Sprintf("[% X]", c.rx)
	}
	b := make([]byte, 0, 32)
	b = strconv.AppendInt(b, int64(c.rx[0]), 10)
	b = append(b, "->RHR "...)
	if err := c.Err(); err != nil {
		return string(append(b, err.Error()...))
	}
	b = append(b, "1["...)
	b = appendReg(b, c.Reg())
	return string(append(b, ']'))
}

func (c *ReadHRegCmd) String() string {
	if c.IsValidRx() {
		return c.Tx() + "\n" + c.Rx()
	}
	return fmt.Sprintf("%s\n[% X]", c.Tx(), c.rx)
}

//----------------------------------------------------------------------

// appendReg right aligns v in 5 columns.
func appendReg(b []byte, v uint16) []byte {
	var x [5]byte
	t := strconv.AppendUint(x[:0], uint64(v), 10)
	for j := len(t); j < 5; j++ {
		b = append(b, ' ')
	}
	return append(b, t...)
}
