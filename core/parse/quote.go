package parse

// QuoteState reports which quoting region, if any, a scan ended inside.
type QuoteState int

const (
	QuoteNone QuoteState = iota
	QuoteSingle
	QuoteDouble
)

// ScanQuoteState replays the tokenizer's quote rules over s and reports
// the state at the end. Completion uses this to decide whether the cursor
// sits inside an open quote.
func ScanQuoteState(s string) QuoteState {
	state := stateNormal
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case stateEscaped:
			state = stateNormal
		case stateNormal:
			switch r {
			case '\\':
				state = stateEscaped
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if r == '\'' {
				state = stateNormal
			}
		case stateDoubleQuote:
			switch r {
			case '"':
				state = stateNormal
			case '\\':
				// Consuming the next character unconditionally is
				// state-equivalent to the full escape rules.
				i++
			}
		}
	}

	switch state {
	case stateSingleQuote:
		return QuoteSingle
	case stateDoubleQuote:
		return QuoteDouble
	default:
		return QuoteNone
	}
}

// Literal strips quoting and escaping from a single word fragment,
// returning the text the user actually means. Unlike Tokenize it
// tolerates an unterminated quote, which is exactly the situation
// mid-completion.
func Literal(s string) string {
	var buf []rune
	state := stateNormal
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case stateEscaped:
			buf = append(buf, r)
			state = stateNormal
		case stateNormal:
			switch r {
			case '\\':
				state = stateEscaped
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			default:
				buf = append(buf, r)
			}
		case stateSingleQuote:
			if r == '\'' {
				state = stateNormal
			} else {
				buf = append(buf, r)
			}
		case stateDoubleQuote:
			switch r {
			case '"':
				state = stateNormal
			case '\\':
				if i+1 < len(runes) {
					switch next := runes[i+1]; next {
					case '\\', '"', '$', '`', '\n':
						buf = append(buf, next)
						i++
					default:
						buf = append(buf, '\\')
					}
				} else {
					buf = append(buf, '\\')
				}
			default:
				buf = append(buf, r)
			}
		}
	}
	if state == stateEscaped {
		buf = append(buf, '\\')
	}
	return string(buf)
}
