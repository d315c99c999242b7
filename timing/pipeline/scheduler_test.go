package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvhazard/insts"
	"github.com/sarchlab/rvhazard/timing/pipeline"
)

var _ = Describe("Scheduler", func() {
	var scheduler *pipeline.Scheduler

	BeforeEach(func() {
		scheduler = pipeline.NewScheduler(pipeline.PolicyNoForwarding)
	})

	Describe("CanHoist", func() {
		It("should accept an independent ALU instruction", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeR(6, 7, 8))
			Expect(scheduler.CanHoist(seq, 0, 2)).To(BeTrue())
		})

		It("should reject a candidate that depends on the producer", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeR(6, 1, 8))
			Expect(scheduler.CanHoist(seq, 0, 2)).To(BeFalse())
		})

		It("should reject a candidate that overwrites a passed-over source", func() {
			// ADD x5 would clobber the x5 read by the instruction it passes.
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeR(5, 7, 8))
			Expect(scheduler.CanHoist(seq, 0, 2)).To(BeFalse())
		})

		It("should reject loads, stores and branches as candidates", func() {
			for _, w := range []uint32{encodeLW(6, 7), encodeSW(6, 7), encodeBEQ(6, 7)} {
				seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), w)
				Expect(scheduler.CanHoist(seq, 0, 2)).To(BeFalse())
			}
		})

		It("should reject passing over a load", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeLW(4, 1), encodeR(6, 7, 8))
			Expect(scheduler.CanHoist(seq, 0, 2)).To(BeFalse())
		})

		It("should reject out-of-range positions", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeR(6, 7, 8))

			Expect(scheduler.CanHoist(seq, 1, 0)).To(BeFalse())
			Expect(scheduler.CanHoist(seq, 0, 2)).To(BeFalse())
			Expect(scheduler.CanHoist(seq, -1, 1)).To(BeFalse())
		})
	})

	Describe("Reorder", func() {
		It("should move an independent instruction behind the producer", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeR(6, 7, 8))

			res := scheduler.Reorder(seq)

			Expect(res.Order).To(Equal(seqOf(encodeR(1, 2, 3), encodeR(6, 7, 8), encodeR(4, 1, 5))))
			Expect(res.BaselineStalls).To(Equal(2))
			Expect(res.FinalStalls).To(Equal(1))
			Expect(res.StallsAvoided).To(Equal(1))
			Expect(res.Migrations).To(Equal(1))
			Expect(res.Scheduled).To(HaveLen(4))
			Expect(res.Scheduled.NOPCount()).To(Equal(1))
		})

		It("should keep migrating until no move helps", func() {
			seq := seqOf(
				encodeR(1, 2, 3),
				encodeR(4, 1, 5),
				encodeR(6, 7, 8),
				encodeR(9, 10, 11),
			)

			res := scheduler.Reorder(seq)

			Expect(res.Order).To(Equal(seqOf(
				encodeR(1, 2, 3),
				encodeR(9, 10, 11),
				encodeR(6, 7, 8),
				encodeR(4, 1, 5),
			)))
			Expect(res.FinalStalls).To(BeZero())
			Expect(res.StallsAvoided).To(Equal(2))
			Expect(res.Migrations).To(Equal(2))
			Expect(res.Scheduled).To(Equal(res.Order))
		})

		It("should leave loads where they are", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeLW(6, 7))

			res := scheduler.Reorder(seq)

			Expect(res.Order).To(Equal(seq))
			Expect(res.StallsAvoided).To(BeZero())
			Expect(res.Migrations).To(BeZero())
		})

		It("should not move anything across a store", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeSW(9, 10), encodeR(6, 7, 8))

			res := scheduler.Reorder(seq)

			Expect(res.Order).To(Equal(seq))
			Expect(res.FinalStalls).To(Equal(res.BaselineStalls))
		})

		It("should have nothing to do with forwarding on ALU chains", func() {
			fwdScheduler := pipeline.NewScheduler(pipeline.PolicyForwarding)
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeR(6, 7, 8))

			res := fwdScheduler.Reorder(seq)

			Expect(res.BaselineStalls).To(BeZero())
			Expect(res.Order).To(Equal(seq))
		})

		It("should hide a load-use stall with forwarding", func() {
			fwdScheduler := pipeline.NewScheduler(pipeline.PolicyForwarding)
			seq := seqOf(encodeLW(1, 2), encodeR(4, 1, 5), encodeR(6, 7, 8))

			res := fwdScheduler.Reorder(seq)

			Expect(res.Order[1]).To(Equal(insts.NewDecoder().Decode(encodeR(6, 7, 8))))
			Expect(res.StallsAvoided).To(Equal(1))
			Expect(res.Scheduled.NOPCount()).To(BeZero())
		})

		It("should respect a narrower window", func() {
			narrow := pipeline.NewScheduler(pipeline.PolicyNoForwarding, pipeline.WithReorderWindow(1))
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeR(6, 7, 8))

			res := narrow.Reorder(seq)

			Expect(res.Order).To(Equal(seq))
		})

		It("should not modify its input", func() {
			seq := seqOf(encodeR(1, 2, 3), encodeR(4, 1, 5), encodeR(6, 7, 8))
			before := seq.Clone()

			scheduler.Reorder(seq)

			Expect(seq).To(Equal(before))
		})

		It("should handle empty and single-instruction programs", func() {
			Expect(scheduler.Reorder(nil).Order).To(BeEmpty())
			Expect(scheduler.Reorder(seqOf(encodeR(1, 2, 3))).Migrations).To(BeZero())
		})
	})
})
