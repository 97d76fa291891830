package scan

// tokKind is a coarse classification of the most recently scanned token,
// kept only to disambiguate a / between division and a regex literal.
type tokKind int

const (
	tokNone tokKind = iota // start of input
	tokValue
	tokOperator
	tokKeyword // keyword after which a regex literal may begin
)

// regexKeywords are keywords after which a / starts a regex literal rather
// than division ("return /x/" vs "total / count").
var regexKeywords = map[string]bool{
	"return": true, "throw": true, "case": true, "typeof": true,
	"instanceof": true, "in": true, "of": true, "new": true,
	"delete": true, "void": true, "do": true, "else": true,
	"yield": true, "await": true,
}

// mode identifies what the top of the nesting stack represents.
type mode int

const (
	modeCode     mode = iota // ordinary code (the bottom frame)
	modeTemplate             // template literal text
	modeExpr                 // ${ } interpolation inside a template
)

type frame struct {
	m      mode
	braces int // open braces inside an interpolation frame
}

// scanner is the single left-to-right state machine. It is advanced with
// stepOne and inspected with context; it never backtracks.
type scanner struct {
	src string
	i   int

	stack []frame

	inString       bool
	quote          byte
	inLineComment  bool
	inBlockComment bool
	inRegex        bool
	inClass        bool // regex character class [...]

	last    tokKind
	wordBuf []byte
}

func newScanner(src string) *scanner {
	return &scanner{
		src:   src,
		stack: []frame{{m: modeCode}},
	}
}

func (s *scanner) top() *frame {
	return &s.stack[len(s.stack)-1]
}

func (s *scanner) inTemplate() bool {
	for _, f := range s.stack {
		if f.m != modeCode {
			return true
		}
	}
	return false
}

// context builds the Context describing the state at the current offset.
func (s *scanner) context() Context {
	ctx := Context{
		InString:       s.inString,
		InComment:      s.inLineComment || s.inBlockComment,
		InRegex:        s.inRegex,
		InTemplate:     s.inTemplate(),
		InTemplateExpr: s.top().m == modeExpr,
	}
	if s.inString {
		ctx.StringChar = s.quote
	}
	switch {
	case s.inLineComment:
		ctx.CommentType = CommentLine
	case s.inBlockComment:
		ctx.CommentType = CommentBlock
	}
	return ctx
}

func (s *scanner) peek(n int) byte {
	if s.i+n < len(s.src) {
		return s.src[s.i+n]
	}
	return 0
}

// flushWord classifies the identifier accumulated in wordBuf, if any.
func (s *scanner) flushWord() {
	if len(s.wordBuf) == 0 {
		return
	}
	if regexKeywords[string(s.wordBuf)] {
		s.last = tokKeyword
	} else {
		s.last = tokValue
	}
	s.wordBuf = s.wordBuf[:0]
}

// regexAllowed reports whether a / at the current position starts a regex
// literal. Division only follows a value (identifier, number, closing
// bracket, string); everything else permits a literal.
func (s *scanner) regexAllowed() bool {
	if len(s.wordBuf) > 0 {
		return regexKeywords[string(s.wordBuf)]
	}
	return s.last != tokValue
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// stepOne consumes one lexical unit (one character, or two for an escape
// pair or a comment opener) and updates the state machine.
func (s *scanner) stepOne() {
	ch := s.src[s.i]

	switch {
	case s.inLineComment:
		if ch == '\n' {
			s.inLineComment = false
		}
		s.i++

	case s.inBlockComment:
		if ch == '*' && s.peek(1) == '/' {
			s.inBlockComment = false
			s.i += 2
			return
		}
		s.i++

	case s.inString:
		switch {
		case ch == '\\':
			s.i += 2
		case ch == s.quote:
			s.inString = false
			s.last = tokValue
			s.i++
		case ch == '\n':
			// Unterminated string: recover at end of line.
			s.inString = false
			s.i++
		default:
			s.i++
		}

	case s.inRegex:
		switch {
		case ch == '\\':
			s.i += 2
		case ch == '[':
			s.inClass = true
			s.i++
		case ch == ']':
			s.inClass = false
			s.i++
		case ch == '/' && !s.inClass:
			s.inRegex = false
			s.last = tokValue
			s.i++
		case ch == '\n':
			// Unterminated regex: recover at end of line.
			s.inRegex = false
			s.i++
		default:
			s.i++
		}

	case s.top().m == modeTemplate:
		switch {
		case ch == '\\':
			s.i += 2
		case ch == '`':
			s.stack = s.stack[:len(s.stack)-1]
			s.last = tokValue
			s.i++
		case ch == '$' && s.peek(1) == '{':
			s.stack = append(s.stack, frame{m: modeExpr})
			s.last = tokNone
			s.i += 2
		default:
			s.i++
		}

	default:
		s.stepCode(ch)
	}
}

// stepCode handles one character in code position (top-level or inside a
// template interpolation).
func (s *scanner) stepCode(ch byte) {
	if isIdentByte(ch) {
		s.wordBuf = append(s.wordBuf, ch)
		s.i++
		return
	}
	if isSpaceByte(ch) {
		s.flushWord()
		s.i++
		return
	}

	switch ch {
	case '/':
		next := s.peek(1)
		if next == '/' {
			s.flushWord()
			s.inLineComment = true
			s.i += 2
			return
		}
		if next == '*' {
			s.flushWord()
			s.inBlockComment = true
			s.i += 2
			return
		}
		allowed := s.regexAllowed()
		s.flushWord()
		if allowed {
			s.inRegex = true
			s.inClass = false
		} else {
			s.last = tokOperator
		}
		s.i++

	case '\'', '"':
		s.flushWord()
		s.inString = true
		s.quote = ch
		s.i++

	case '`':
		s.flushWord()
		s.stack = append(s.stack, frame{m: modeTemplate})
		s.i++

	case '{':
		s.flushWord()
		if s.top().m == modeExpr {
			s.top().braces++
		}
		s.last = tokOperator
		s.i++

	case '}':
		s.flushWord()
		if f := s.top(); f.m == modeExpr {
			if f.braces == 0 {
				s.stack = s.stack[:len(s.stack)-1]
				s.i++
				return
			}
			f.braces--
		}
		// A closing brace usually ends a block, after which a regex
		// literal is permitted.
		s.last = tokOperator
		s.i++

	case ')', ']':
		s.flushWord()
		s.last = tokValue
		s.i++

	default:
		s.flushWord()
		s.last = tokOperator
		s.i++
	}
}

// stepTo advances the scanner until it reaches or passes offset.
func (s *scanner) stepTo(offset int) {
	for s.i < offset && s.i < len(s.src) {
		s.stepOne()
	}
}
