package insts

// TallyOrder lists kinds in the order the classifier reports them.
var TallyOrder = []Kind{KindR, KindI, KindS, KindB, KindU, KindJ, KindUnknown}

// Classified pairs an input line with the kind its opcode selects.
type Classified struct {
	Text string
	Kind Kind
}

// Classifier tallies instruction kinds over a listing without any hazard
// analysis.
type Classifier struct {
	decoder *Decoder
	entries []Classified
	counts  map[Kind]int
}

// NewClassifier creates an empty classifier.
func NewClassifier() *Classifier {
	c := &Classifier{
		decoder: NewDecoder(),
		counts:  make(map[Kind]int, len(TallyOrder)),
	}
	for _, k := range TallyOrder {
		c.counts[k] = 0
	}
	return c
}

// Classify decodes one hexadecimal line and records its kind. Malformed
// text is reported and leaves the tally unchanged.
func (c *Classifier) Classify(text string) (Kind, error) {
	word, err := ParseWord(text)
	if err != nil {
		return KindUnknown, err
	}

	k := c.decoder.Classify(word)
	c.counts[k]++
	c.entries = append(c.entries, Classified{Text: FormatHex(word), Kind: k})

	return k, nil
}

// Entries returns the classified lines in input order.
func (c *Classifier) Entries() []Classified {
	return c.entries
}

// Count returns how many lines were classified as k.
func (c *Classifier) Count(k Kind) int {
	return c.counts[k]
}

// Counts returns a copy of the tally.
func (c *Classifier) Counts() map[Kind]int {
	out := make(map[Kind]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Total returns the number of classified lines.
func (c *Classifier) Total() int {
	return len(c.entries)
}
