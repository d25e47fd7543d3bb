package spindle

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout    = errors.New("timeout waiting for response")
	ErrSpeedRange = errors.New("speed out of range")
)

type BadRxErr []byte

func (e BadRxErr) Error() string {
	return fmt.Sprintf("invalid response: [% X]", []byte(e))
}

// ModbusErr is the exception code of an exception response.
type ModbusErr byte

func (e ModbusErr) Error() string {
	switch e {
	case 1:
		return "illegal function"
	case 2:
		return "illegal data address"
	case 3:
		return "illegal data value"
	case 4:
		return "server device failure"
	case 5:
		return "acknowledge"
	case 6:
		return "server device busy"
	default:
		return fmt.Sprintf("modbus exception %d", byte(e))
	}
}
