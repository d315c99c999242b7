package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvhazard/insts"
)

var _ = Describe("Insts Package", func() {
	It("should have an Instruction type", func() {
		var i insts.Instruction
		Expect(i).To(BeZero())
		Expect(i.Kind).To(Equal(insts.KindUnknown))
	})

	It("should have a Decoder type", func() {
		decoder := insts.NewDecoder()
		Expect(decoder).ToNot(BeNil())
	})

	Describe("Sequence", func() {
		It("should clone without sharing storage", func() {
			decoder := insts.NewDecoder()
			seq := decoder.DecodeWords(0x003100B3, 0x00508233)

			clone := seq.Clone()
			clone[0] = insts.NOP()

			Expect(seq[0].Kind).To(Equal(insts.KindR))
			Expect(clone.NOPCount()).To(Equal(1))
			Expect(seq.NOPCount()).To(Equal(0))
		})

		It("should render hex lines", func() {
			seq := insts.Sequence{insts.NOP(), insts.NewDecoder().Decode(0xabc)}
			Expect(seq.HexLines()).To(Equal([]string{"00000013", "00000ABC"}))
			Expect(seq.Words()).To(Equal([]uint32{0x13, 0xABC}))
		})
	})
})
