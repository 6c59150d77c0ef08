package parse

import (
	"regexp"
	"strconv"
)

var (
	itemCodeRe  = regexp.MustCompile(`(?i)\bv(\d{5})\b`)
	pcsInlineRe = regexp.MustCompile(`(?i)=\s*(\d+)\s*pcs`)
	pcsAloneRe  = regexp.MustCompile(`(?i)\b(\d+)\s*pcs\b`)
)

// DefaultQuantityWindow is how many lines below an item code are searched for
// its quantity in the Moovia order-picking template.
const DefaultQuantityWindow = 3

// ItemRecord is one detected item-code occurrence with its resolved quantity.
// Duplicates are retained here; Aggregate merges them.
type ItemRecord struct {
	Code     string
	Quantity int
}

// ItemParser scans document text for item codes ("V" + 5 digits) and pairs
// each with a quantity ("= N pcs" on the same line, or a pcs amount within the
// quantity window below it). The window is the only template-specific knob.
type ItemParser struct {
	window int
}

// NewItemParser returns a parser with the given quantity window. A negative
// window selects the default; zero disables look-ahead entirely.
func NewItemParser(window int) *ItemParser {
	if window < 0 {
		window = DefaultQuantityWindow
	}
	return &ItemParser{window: window}
}

// Parse returns the (code, quantity) occurrences in document order, scanning
// top to bottom and left to right within a line. A code whose quantity cannot
// be resolved is dropped silently.
func (p *ItemParser) Parse(text string) []ItemRecord {
	lines := splitLines(text)

	var items []ItemRecord
	for i, line := range lines {
		matches := itemCodeRe.FindAllStringSubmatch(line, -1)
		if matches == nil {
			continue
		}

		// An inline quantity applies to every code on its line, even when
		// the line carries several codes.
		inlineQty, hasInline := matchQuantity(pcsInlineRe, line)

		for _, m := range matches {
			code := "V" + m[1]
			qty, ok := inlineQty, hasInline
			if !ok {
				qty, ok = p.lookAhead(lines, i)
			}
			if !ok {
				continue
			}
			items = append(items, ItemRecord{Code: code, Quantity: qty})
		}
	}
	return items
}

// lookAhead searches up to p.window lines below lines[i] for a quantity.
// Hitting a line with another item code ends the search: a quantity is never
// taken from the next item's block.
func (p *ItemParser) lookAhead(lines []string, i int) (int, bool) {
	for la := 1; la <= p.window; la++ {
		if i+la >= len(lines) {
			break
		}
		line := lines[i+la]
		if itemCodeRe.MatchString(line) {
			break
		}
		if qty, ok := matchQuantity(pcsInlineRe, line); ok {
			return qty, true
		}
		if qty, ok := matchQuantity(pcsAloneRe, line); ok {
			return qty, true
		}
	}
	return 0, false
}

// splitLines breaks text on \n, \r, \r\n, \f and \v. PDF text layers emit
// form feeds as page separators and occasionally bare carriage returns, and a
// quantity on the far side of one belongs to a different line than its code.
// Empty lines are kept so look-ahead distances stay intact.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n', '\r', '\f', '\v':
			lines = append(lines, text[start:i])
			if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, text[start:])
}

func matchQuantity(re *regexp.Regexp, line string) (int, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
