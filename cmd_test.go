package spindle_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/bangzek/spindle-rtu"
)

var _ = Describe("Frame", func() {
	It("lays out a write with byte count and data", func() {
		f := Frame{Dev: 1, Fn: FnWriteRegs, Addr: 0x0901, Count: 1,
			Data: []uint16{0x07D0}}
		Expect(f.Len()).To(Equal(11))
		Expect(f.Bytes()).To(Equal([]byte{
			0x01, 0x10, 0x09, 0x01, 0x00, 0x01, 0x02, 0x07, 0xD0, 0x3D, 0x2D,
		}))
	})

	It("lays out a read without them", func() {
		f := Frame{Dev: 1, Fn: FnReadHRegs, Addr: 0x0502, Count: 1}
		Expect(f.Len()).To(Equal(8))
		Expect(f.Bytes()).To(Equal([]byte{
			0x01, 0x03, 0x05, 0x02, 0x00, 0x01, 0x25, 0x06,
		}))
	})

	It("puts the checksum over everything before it", func() {
		b := Frame{Dev: 1, Fn: FnWriteRegs, Addr: 2, Count: 1,
			Data: []uint16{3}}.Bytes()
		Expect(CRC16(b[:len(b)-2])).To(Equal(uint16(b[len(b)-1])<<8 | uint16(b[len(b)-2])))
		Expect(b).To(Equal([]byte{1, 16, 0, 2, 0, 1, 2, 0, 3, 0xE7, 0xB3}))
	})
})

var _ = Describe("WriteRegCmd", func() {
	var cmd *WriteRegCmd
	BeforeEach(func() {
		cmd = NewWriteRegCmd(RegControl, 1)
	})

	It("has Tx Bytes", func() {
		Expect(cmd.TxBytes()).To(Equal([]byte{
			0x01, 0x10, 0x09, 0x00, 0x00, 0x01, 0x02, 0x00, 0x01, 0xFE, 0x90,
		}))
	})
	It("has Addr", func() {
		Expect(cmd.Addr()).To(Equal(RegControl))
	})
	It("has Reg", func() {
		Expect(cmd.Reg()).To(Equal(uint16(1)))
	})
	It("has Tx String", func() {
		Expect(cmd.Tx()).To(Equal("1<-WR  2304:1[    1]"))
		Expect(cmd.String()).To(Equal(cmd.Tx()))
	})
	It("expects no response", func() {
		Expect(cap(*cmd.RxBytes())).To(BeZero())
		Expect(cmd.IsValidRx()).To(BeFalse())
		Expect(cmd.Rx()).To(BeEmpty())
		Expect(cmd.Err()).To(Succeed())
	})

	Context("Reg changed", func() {
		BeforeEach(func() {
			cmd.SetReg(0)
		})

		It("recomputes the checksum", func() {
			Expect(cmd.TxBytes()).To(Equal([]byte{
				0x01, 0x10, 0x09, 0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x3F, 0x50,
			}))
		})
		It("has Tx String", func() {
			Expect(cmd.Tx()).To(Equal("1<-WR  2304:1[    0]"))
		})
	})
})

var _ = Describe("ReadHRegCmd", func() {
	var cmd *ReadHRegCmd
	BeforeEach(func() {
		cmd = NewReadHRegCmd(RegOutFreq)
	})
	SetRx := func(b []byte) {
		BeforeEach(func() {
			rx := cmd.RxBytes()
			*rx = (*rx)[:len(b)]
			copy(*rx, b)
		})
	}

	It("has Tx Bytes", func() {
		Expect(cmd.TxBytes()).To(Equal([]byte{
			0x01, 0x03, 0x05, 0x02, 0x00, 0x01, 0x25, 0x06,
		}))
	})
	It("has Tx String", func() {
		Expect(cmd.Tx()).To(Equal("1<-RHR 1282:1"))
	})
	It("reads a fixed 8 bytes", func() {
		Expect(cap(*cmd.RxBytes())).To(Equal(ReadRxLen))
		Expect(ReadRxLen).To(Equal(8))
	})
	It("has zero Reg without response", func() {
		Expect(cmd.Reg()).To(BeZero())
	})

	Context("good response", func() {
		SetRx([]byte{0x01, 0x03, 0x02, 0x07, 0xD0, 0xBB, 0xE8})

		It("is Valid Rx", func() {
			Expect(cmd.IsValidRx()).To(BeTrue())
		})
		It("has Reg", func() {
			Expect(cmd.Reg()).To(Equal(uint16(2000)))
		})
		It("has no Err", func() {
			Expect(cmd.Err()).To(Succeed())
		})
		It("has Rx String", func() {
			Expect(cmd.Rx()).To(Equal("1->RHR 1[ 2000]"))
		})
		It("has String", func() {
			Expect(cmd.String()).To(Equal("1<-RHR 1282:1\n1->RHR 1[ 2000]"))
		})
	})

	Context("8 byte response with a bad checksum", func() {
		SetRx([]byte{0x01, 0x03, 0x02, 0x07, 0xD0, 0x00, 0x00, 0x00})

		It("still has Reg", func() {
			Expect(cmd.Reg()).To(Equal(uint16(2000)))
		})
		It("is not Valid Rx", func() {
			Expect(cmd.IsValidRx()).To(BeFalse())
		})
		It("dumps it in String", func() {
			Expect(cmd.String()).To(Equal(
				"1<-RHR 1282:1\n[01 03 02 07 D0 00 00 00]"))
		})
	})

	Context("exception response", func() {
		SetRx([]byte{0x01, 0x83, 0x02, 0xC0, 0xF1})

		It("is Valid Rx", func() {
			Expect(cmd.IsValidRx()).To(BeTrue())
		})
		It("has Err", func() {
			Expect(cmd.Err()).To(MatchError(ModbusErr(2)))
			Expect(cmd.Err()).To(MatchError("illegal data address"))
		})
		It("has Rx String", func() {
			Expect(cmd.Rx()).To(Equal("1->RHR illegal data address"))
		})
	})

	Context("short response", func() {
		SetRx([]byte{0x01, 0x03})

		It("dumps it in Rx String", func() {
			Expect(cmd.Rx()).To(Equal("[01 03]"))
		})
		It("has zero Reg", func() {
			Expect(cmd.Reg()).To(BeZero())
		})
	})
})

var _ = Describe("ModbusErr", func() {
	DescribeTable("Error",
		func(e ModbusErr, s string) {
			Expect(e.Error()).To(Equal(s))
		},
		Entry(nil, ModbusErr(1), "illegal function"),
		Entry(nil, ModbusErr(3), "illegal data value"),
		Entry(nil, ModbusErr(4), "server device failure"),
		Entry(nil, ModbusErr(11), "modbus exception 11"),
	)
})
