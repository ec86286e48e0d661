package naming

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/backmassage/picrename/internal/config"
)

// Random-suffix policy limits.
const (
	RandomPrefixMax = 4  // Prefix characters kept.
	RandomBudget    = 22 // Target length of the name without extension.
	MinRandomLen    = 2  // Suffix never shrinks below this, even over budget.
)

// Sequential policy limits.
const (
	SequentialBudget    = 15    // Hard length of prefix+date+number.
	SequentialMaxNumber = 99999 // Numbers are clamped to this value.
)

const (
	dateLayout   = "060102" // YYMMDD
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Generator produces new file and folder names for one naming policy.
type Generator struct {
	policy config.NamingPolicy
	rnd    *rand.Rand // nil uses the auto-seeded global source.
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand makes random suffixes reproducible.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// New returns a Generator for policy. Unknown policies behave as
// [config.PolicyRandomSuffix]; callers validate config first.
func New(policy config.NamingPolicy, opts ...Option) *Generator {
	g := &Generator{policy: policy}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Policy reports the generator's naming policy.
func (g *Generator) Policy() config.NamingPolicy { return g.policy }

// Batch holds everything fixed for one rename invocation: the effective
// prefix, the shared date stamp, and the (policy-adjusted) start number.
type Batch struct {
	Prefix string
	Date   string
	Start  int

	gen *Generator
}

// NewBatch computes the effective prefix and date stamp once for a batch of
// size files starting at start.
func (g *Generator) NewBatch(rawPrefix string, start, size int, now time.Time) Batch {
	b := Batch{Date: DateStamp(now), gen: g}
	if g.policy == config.PolicySequential {
		last := start
		if size > 0 {
			last = start + size - 1
		}
		b.Start = ClampNumber(start)
		b.Prefix = Truncate(rawPrefix, SequentialPrefixMax(ClampNumber(last)))
		return b
	}
	b.Start = start
	b.Prefix = Truncate(rawPrefix, RandomPrefixMax)
	return b
}

// Number returns the sequence number for the file at position i.
func (b Batch) Number(i int) int {
	if b.gen.policy == config.PolicySequential {
		return ClampNumber(b.Start + i)
	}
	return b.Start + i
}

// FileName returns the new base name for number. ext is appended verbatim
// and carries its leading dot (".JPG", ".png").
func (b Batch) FileName(number int, ext string) string {
	if b.gen.policy == config.PolicySequential {
		return b.Prefix + b.Date + FormatNumber(number) + ext
	}
	n := RandomSuffixLen(b.Prefix, number, b.Date)
	return fmt.Sprintf("%s_%d_%s_%s%s", b.Prefix, number, b.Date, b.gen.randomString(n), ext)
}

// FolderName summarizes a finished batch: prefix, date, number range and the
// count of renamed files.
func (b Batch) FolderName(end, count int) string {
	if b.gen.policy == config.PolicySequential {
		return fmt.Sprintf("%s%s %s-%s %d张", b.Prefix, b.Date, FormatNumber(b.Start), FormatNumber(end), count)
	}
	return fmt.Sprintf("%s_%s %d-%d %d张", b.Prefix, b.Date, b.Start, end, count)
}

// Preview returns the name the first file of a batch would get, using a
// ".jpg" extension.
func (g *Generator) Preview(rawPrefix string, start int, now time.Time) string {
	b := g.NewBatch(rawPrefix, start, 1, now)
	return b.FileName(b.Number(0), ".jpg")
}

func (g *Generator) randomString(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		var i int
		if g.rnd != nil {
			i = g.rnd.IntN(len(alphanumeric))
		} else {
			i = rand.IntN(len(alphanumeric))
		}
		sb.WriteByte(alphanumeric[i])
	}
	return sb.String()
}

// DateStamp formats t as YYMMDD in t's own location.
func DateStamp(t time.Time) string {
	return t.Format(dateLayout)
}

// Truncate keeps at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// RandomSuffixLen returns the suffix length that fills the random-suffix
// budget. When the fixed parts already reach the budget the suffix stays at
// MinRandomLen and the name runs over.
func RandomSuffixLen(prefix string, number int, date string) int {
	fixed := utf8.RuneCountInString(prefix) + 1 + len(strconv.Itoa(number)) + 1 + len(date) + 1
	if n := RandomBudget - fixed; n > MinRandomLen {
		return n
	}
	return MinRandomLen
}

// SequentialPrefixMax returns the prefix length left in the sequential
// budget once the date and the digits of largest are accounted for.
func SequentialPrefixMax(largest int) int {
	n := SequentialBudget - len(dateLayout) - len(strconv.Itoa(largest))
	if n < 0 {
		return 0
	}
	return n
}

// ClampNumber limits n to [0, SequentialMaxNumber].
func ClampNumber(n int) int {
	switch {
	case n < 0:
		return 0
	case n > SequentialMaxNumber:
		return SequentialMaxNumber
	}
	return n
}

// FormatNumber zero-pads to three digits below 100; larger values print plain.
func FormatNumber(n int) string {
	if n < 100 {
		return fmt.Sprintf("%03d", n)
	}
	return strconv.Itoa(n)
}
