package js_lexer

// XML literal scanning. The parser switches the lexer into one of these two
// modes after a "<" token: NextInsideXMLElement while inside a tag and
// NextXMLElementChild for element content. Attribute values and text data
// keep their raw bytes; no entity processing happens here or anywhere else,
// XML literals round-trip as written.

func isXMLNameStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isXMLNameContinue(c rune) bool {
	return isXMLNameStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '.'
}

func isXMLWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// NextInsideXMLElement scans the next token between "<" and ">".
func (l *Lexer) NextInsideXMLElement() {
	l.HasNewlineBefore = false

	for {
		l.start = l.end
		l.Line = l.line

		switch l.codePoint {
		case -1:
			l.SyntaxError("unexpected end of file inside XML literal")

		case '\r', '\n', ' ', '\t':
			l.step()
			continue

		case '>':
			l.step()
			l.Token = TGreaterThan
		case '/':
			l.step()
			l.Token = TSlash
		case '=':
			l.step()
			l.Token = TEquals
		case '{':
			l.step()
			l.Token = TOpenBrace
		case ':':
			l.step()
			l.Token = TColon

		case '"', '\'':
			quote := l.codePoint
			l.step()
			valueStart := l.end
			for l.codePoint != quote {
				if l.codePoint == -1 {
					l.SyntaxError("unterminated XML attribute value")
				}
				l.step()
			}
			l.StringValue = l.source[valueStart:l.end]
			l.step()
			l.Token = TStringLiteral

		case '!':
			l.scanXMLComment()
		case '?':
			l.scanXMLPI()

		default:
			if !isXMLNameStart(l.codePoint) {
				l.SyntaxError("invalid character inside XML literal")
			}
			l.step()
			for isXMLNameContinue(l.codePoint) {
				l.step()
			}
			l.Identifier = l.Raw()
			l.Token = TIdentifier
		}
		return
	}
}

// NextXMLElementChild scans element content: text runs, "{" for an embedded
// expression, "<" for a nested element, or "</" for the closing tag.
func (l *Lexer) NextXMLElementChild() {
	l.HasNewlineBefore = false
	l.start = l.end
	l.Line = l.line

	switch l.codePoint {
	case -1:
		l.SyntaxError("unexpected end of file inside XML literal")

	case '{':
		l.step()
		l.Token = TOpenBrace

	case '<':
		l.step()
		switch l.codePoint {
		case '/':
			l.step()
			l.Token = TLessThanSlash
		case '!':
			l.scanXMLComment()
		case '?':
			l.scanXMLPI()
		default:
			l.Token = TLessThan
		}

	default:
		whitespace := true
		for l.codePoint != '<' && l.codePoint != '{' && l.codePoint != -1 {
			if !isXMLWhitespace(l.codePoint) {
				whitespace = false
			}
			l.step()
		}
		l.StringValue = l.Raw()
		l.XMLIsWhitespace = whitespace
		l.Token = TXMLText
	}
}

// scanXMLComment is entered on the "!" of "<!--"; the "<" is already gone.
func (l *Lexer) scanXMLComment() {
	l.step()
	if l.codePoint != '-' {
		l.SyntaxError("invalid XML comment")
	}
	l.step()
	if l.codePoint != '-' {
		l.SyntaxError("invalid XML comment")
	}
	l.step()
	textStart := l.end
	for {
		if l.codePoint == -1 {
			l.SyntaxError("unterminated XML comment")
		}
		if l.codePoint == '-' {
			dash := l.end
			l.step()
			if l.codePoint == '-' {
				l.step()
				if l.codePoint == '>' {
					l.StringValue = l.source[textStart:dash]
					l.step()
					l.Token = TXMLComment
					return
				}
			}
			continue
		}
		l.step()
	}
}

// scanXMLPI is entered on the "?" of "<?"; the "<" is already gone.
func (l *Lexer) scanXMLPI() {
	l.step()
	textStart := l.end
	for {
		if l.codePoint == -1 {
			l.SyntaxError("unterminated XML processing instruction")
		}
		if l.codePoint == '?' {
			question := l.end
			l.step()
			if l.codePoint == '>' {
				l.StringValue = l.source[textStart:question]
				l.step()
				l.Token = TXMLPI
				return
			}
			continue
		}
		l.step()
	}
}
