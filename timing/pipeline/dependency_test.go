package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvhazard/insts"
	"github.com/sarchlab/rvhazard/timing/pipeline"
)

var _ = Describe("Dependency Oracle", func() {
	decoder := insts.NewDecoder()

	It("should detect RAW", func() {
		a := decoder.Decode(encodeR(1, 2, 3))
		b := decoder.Decode(encodeR(4, 1, 5))

		Expect(pipeline.DependsOn(a, b)).To(Equal(pipeline.DepRAW))
		Expect(pipeline.Independent(a, b)).To(BeFalse())
	})

	It("should detect WAR", func() {
		a := decoder.Decode(encodeR(4, 1, 5))
		b := decoder.Decode(encodeR(1, 2, 3))

		Expect(pipeline.DependsOn(a, b)).To(Equal(pipeline.DepWAR))
	})

	It("should detect WAW alongside RAW", func() {
		a := decoder.Decode(encodeR(1, 2, 3))
		b := decoder.Decode(encodeR(1, 1, 5))

		d := pipeline.DependsOn(a, b)
		Expect(d.Has(pipeline.DepRAW)).To(BeTrue())
		Expect(d.Has(pipeline.DepWAW)).To(BeTrue())
		Expect(d.Has(pipeline.DepWAR)).To(BeFalse())
		Expect(d.String()).To(Equal("RAW|WAW"))
	})

	It("should ignore x0 in every direction", func() {
		a := decoder.Decode(encodeR(0, 2, 3))
		b := decoder.Decode(encodeR(0, 0, 0))

		Expect(pipeline.DependsOn(a, b)).To(Equal(pipeline.DepNone))
		Expect(pipeline.DependsOn(b, a)).To(Equal(pipeline.DepNone))
		Expect(pipeline.DepNone.String()).To(Equal("None"))
	})

	It("should treat NOP and Unknown as inert", func() {
		add := decoder.Decode(encodeR(1, 1, 1))
		unknown := decoder.Decode(0x0000000F)

		Expect(pipeline.Independent(add, insts.NOP())).To(BeTrue())
		Expect(pipeline.Independent(add, unknown)).To(BeTrue())
	})

	It("should be symmetric as a yes/no relation", func() {
		a := decoder.Decode(encodeLW(3, 1))
		b := decoder.Decode(encodeSW(3, 2))

		Expect(pipeline.Independent(a, b)).To(Equal(pipeline.Independent(b, a)))
		Expect(pipeline.Independent(a, b)).To(BeFalse())
	})
})
