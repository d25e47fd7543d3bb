package spindle

import (
	"fmt"
	"strings"

	"github.com/albenik/go-serial/v2"
)

type Parity serial.Parity

const (
	NoParity   = Parity(serial.NoParity)
	OddParity  = Parity(serial.OddParity)
	EvenParity = Parity(serial.EvenParity)
)

var parityNames = []string{
	NoParity:   "NONE",
	OddParity:  "ODD",
	EvenParity: "EVEN",
}

func (p Parity) IsValid() bool {
	return p >= 0 && int(p) < len(parityNames)
}

func (p Parity) String() string {
	if p.IsValid() {
		return parityNames[p]
	}
	return fmt.Sprintf("ERR:%d", p)
}

func (p Parity) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("Invalid Parity: %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText takes the String forms in any letter case.
func (p *Parity) UnmarshalText(b []byte) error {
	i, ok := lookupName(parityNames, b)
	if !ok {
		return fmt.Errorf("Invalid Parity from %q", b)
	}
	*p = Parity(i)
	return nil
}

//----------------------------------------------------------------------

// DirMode selects what drives the transceiver direction of a SerialPort.
type DirMode int

const (
	NoDir     DirMode = iota // transceiver switches by itself
	RTSDir                   // RTS high while sending
	RTSInvDir                // RTS low while sending
)

var dirNames = []string{
	NoDir:     "NONE",
	RTSDir:    "RTS",
	RTSInvDir: "RTS_INV",
}

func (d DirMode) IsValid() bool {
	return d >= 0 && int(d) < len(dirNames)
}

func (d DirMode) String() string {
	if d.IsValid() {
		return dirNames[d]
	}
	return fmt.Sprintf("ERR:%d", int(d))
}

func (d DirMode) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("Invalid DirMode: %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *DirMode) UnmarshalText(b []byte) error {
	i, ok := lookupName(dirNames, b)
	if !ok {
		return fmt.Errorf("Invalid DirMode from %q", b)
	}
	*d = DirMode(i)
	return nil
}

//----------------------------------------------------------------------

func lookupName(names []string, b []byte) (int, bool) {
	s := strings.ToUpper(string(b))
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
