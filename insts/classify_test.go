package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvhazard/insts"
)

var _ = Describe("Classifier", func() {
	var c *insts.Classifier

	BeforeEach(func() {
		c = insts.NewClassifier()
	})

	It("should start with every kind at zero", func() {
		for _, k := range insts.TallyOrder {
			Expect(c.Count(k)).To(BeZero())
		}
		Expect(c.Total()).To(BeZero())
	})

	It("should tally kinds in input order", func() {
		for _, line := range []string{"003100b3", "00012083", "00512423", "00208463", "0000000f", "003100B3"} {
			_, err := c.Classify(line)
			Expect(err).ToNot(HaveOccurred())
		}

		Expect(c.Count(insts.KindR)).To(Equal(2))
		Expect(c.Count(insts.KindI)).To(Equal(1))
		Expect(c.Count(insts.KindS)).To(Equal(1))
		Expect(c.Count(insts.KindB)).To(Equal(1))
		Expect(c.Count(insts.KindUnknown)).To(Equal(1))
		Expect(c.Total()).To(Equal(6))
		Expect(c.Entries()[0]).To(Equal(insts.Classified{Text: "003100B3", Kind: insts.KindR}))
	})

	It("should leave the tally untouched on malformed text", func() {
		_, err := c.Classify("zz")

		Expect(err).To(MatchError(ContainSubstring("malformed instruction")))
		Expect(c.Total()).To(BeZero())
	})

	It("should return a copy of the counts", func() {
		_, _ = c.Classify("00000033")
		counts := c.Counts()
		counts[insts.KindR] = 99

		Expect(c.Count(insts.KindR)).To(Equal(1))
	})
})
