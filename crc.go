package spindle

import "github.com/sigurn/crc16"

var crcTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// CRC16 returns the Modbus RTU checksum of b.
func CRC16(b []byte) uint16 {
	return crc16.Checksum(b, crcTable)
}

// SetChecksum writes the checksum of b[:len(b)-2] into the last two bytes of
// b, low byte first.
func SetChecksum(b []byte) {
	cs := CRC16(b[:len(b)-2])
	b[len(b)-2] = byte(cs)
	b[len(b)-1] = byte(cs >> 8)
}

func checksum(b []byte) bool {
	if len(b) < 3 {
		return false
	}
	cs := CRC16(b[:len(b)-2])
	return b[len(b)-2] == byte(cs) && b[len(b)-1] == byte(cs>>8)
}
