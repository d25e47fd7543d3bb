package spindle

// Frame is the request layout shared by both function codes:
//
//	Dev   : 1 byte
//	Fn    : 1 byte
//	Addr  : 2 bytes, big endian
//	Count : 2 bytes, big endian
//	        1 byte byte count + 2 bytes per value, only when Data != nil
//	CRC   : 2 bytes, little endian
type Frame struct {
	Dev   byte
	Fn    byte
	Addr  uint16
	Count uint16
	Data  []uint16
}

func (f Frame) Len() int {
	if f.Data == nil {
		return 8
	}
	return 9 + len(f.Data)*2
}

func (f Frame) Bytes() []byte {
	b := make([]byte, 0, f.Len())
	b = append(b, f.Dev, f.Fn)
	b = append(b, byte(f.Addr>>8), byte(f.Addr))
	b = append(b, byte(f.Count>>8), byte(f.Count))
	if f.Data != nil {
		b = append(b, byte(len(f.Data)*2))
		for _, v := range f.Data {
			b = append(b, byte(v>>8), byte(v))
		}
	}
	// CRC goes in last, over everything before it.
	b = append(b, 0, 0)
	SetChecksum(b)
	return b
}
