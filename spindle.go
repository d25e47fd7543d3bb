// Package spindle drives a Nowforever VFD spindle over half duplex RS-485
// Modbus RTU.
//
// Register map used, from the E100 manual:
//
//	0x0900  bit 0: run (1) / stop (0)
//	0x0901  target frequency, 0.01 Hz
//	0x0909  write 1 to save parameters to EEPROM
//	0x0502  output frequency, 0.01 Hz, read only
package spindle

import (
	"fmt"
	"io"
)

const (
	RegControl uint16 = 0x0900
	RegFreq    uint16 = 0x0901
	RegSave    uint16 = 0x0909
	RegOutFreq uint16 = 0x0502
)

// MaxRPM is the highest speed whose frequency still fits a register.
const MaxRPM = 655*60 + 59

// Sender runs one command. A nil error means the response, if any, was read;
// it is decoded as is.
type Sender interface {
	Send(Cmd) error
}

// Spindle keeps only what it was last told, on or off; nothing is read back
// from the drive except by ReportSpeed.
type Spindle struct {
	Con Sender
	// Out receives the "Current RPM" line of ReportSpeed, if not nil.
	Out io.Writer

	on bool
}

func (s *Spindle) IsOn() bool {
	return s.on
}

func (s *Spindle) TurnOn() error {
	if err := s.Con.Send(NewWriteRegCmd(RegControl, 1)); err != nil {
		return err
	}
	s.on = true
	return nil
}

func (s *Spindle) TurnOff() error {
	if err := s.Con.Send(NewWriteRegCmd(RegControl, 0)); err != nil {
		return err
	}
	s.on = false
	return nil
}

func (s *Spindle) SetSpeed(rpm int) error {
	if rpm < 0 || rpm > MaxRPM {
		return fmt.Errorf("%w: %d rpm", ErrSpeedRange, rpm)
	}
	return s.Con.Send(NewWriteRegCmd(RegFreq, RPMToHz100(rpm)))
}

// Save makes the drive keep its current parameters over a power cycle.
func (s *Spindle) Save() error {
	return s.Con.Send(NewWriteRegCmd(RegSave, 1))
}

func (s *Spindle) ReportSpeed() (int, error) {
	cmd := NewReadHRegCmd(RegOutFreq)
	if err := s.Con.Send(cmd); err != nil {
		return 0, err
	}
	rpm := Hz100ToRPM(cmd.Reg())
	if s.Out != nil {
		fmt.Fprintf(s.Out, "Current RPM: %d\n", rpm)
	}
	return rpm, nil
}

// RPMToHz100 truncates to whole Hz first, so 1250 gives the same 2000 as 1200.
func RPMToHz100(rpm int) uint16 {
	return uint16(rpm / 60 * 100)
}

// Hz100ToRPM truncates to whole Hz first as well. It is not the inverse of
// RPMToHz100.
func Hz100ToRPM(hz uint16) int {
	return int(hz) / 100 * 60
}
