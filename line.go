package spindle

// Line is the driver enable of a half duplex transceiver. Set switches the
// transceiver to transmit, Clear back to receive.
type Line interface {
	Set() error
	Clear() error
}

// NopLine is for transceivers that switch direction by themselves.
type NopLine struct{}

func (NopLine) Set() error   { return nil }
func (NopLine) Clear() error { return nil }

type rtsSetter interface {
	SetRTS(bool) error
}

// rtsLine drives the enable pin from the RTS output of the serial port.
type rtsLine struct {
	port rtsSetter
	tx   bool
}

func (l rtsLine) Set() error {
	return l.port.SetRTS(l.tx)
}

func (l rtsLine) Clear() error {
	return l.port.SetRTS(!l.tx)
}

func (d DirMode) line(port rtsSetter) Line {
	switch d {
	case RTSDir:
		return rtsLine{port, true}
	case RTSInvDir:
		return rtsLine{port, false}
	default:
		return NopLine{}
	}
}
