package temporal

// Productions of the Temporal ISO-8601 grammar.
//
// Each method matches one grammar rule at the current cursor position and
// reports whether it matched. A production that fails leaves the cursor and
// all captures exactly as it found them. Alternatives are ordered: the first
// one that matches wins and later alternatives are never tried, even if a
// sibling production fails afterward.
//
// Terminal-only rules that consume at most one literal (decimalDigit,
// asciiSign, decimalSeparator, dateTimeSeparator) cannot partially match and
// so do not open a transaction.

// minus is U+2212 MINUS SIGN. It is three bytes long in UTF-8.
const minus = "\u2212"

// decimalDigit parses DecimalDigit: one of 0 1 2 3 4 5 6 7 8 9.
func (p *parser) decimalDigit() bool {
	return p.consumeIf(isASCIIDigit)
}

// nonZeroDigit parses NonZeroDigit: one of 1 2 3 4 5 6 7 8 9.
func (p *parser) nonZeroDigit() bool {
	if p.peek(isASCIIDigit) && !p.peekByte('0') {
		p.consume()

		return true
	}

	return false
}

// asciiSign parses ASCIISign: one of + -.
func (p *parser) asciiSign() bool {
	return p.consumeByte('+') || p.consumeByte('-')
}

// sign parses Sign: ASCIISign | U+2212.
func (p *parser) sign() bool {
	tx := p.begin()
	defer tx.end()

	if !p.asciiSign() && !p.consumeString(minus) {
		return false
	}

	tx.capture(Sign)
	tx.commit()

	return true
}

// hour parses Hour: 0 DecimalDigit | 1 DecimalDigit | 20 | 21 | 22 | 23.
func (p *parser) hour() bool {
	tx := p.begin()
	defer tx.end()

	if p.consumeByte('0') || p.consumeByte('1') {
		if !p.decimalDigit() {
			return false
		}
	} else if !p.consumeString("20") &&
		!p.consumeString("21") &&
		!p.consumeString("22") &&
		!p.consumeString("23") {
		return false
	}

	tx.commit()

	return true
}

// minuteSecond parses MinuteSecond: a digit 0 through 5 followed by
// DecimalDigit.
func (p *parser) minuteSecond() bool {
	tx := p.begin()
	defer tx.end()

	if !p.consumeIf(func(b byte) bool { return '0' <= b && b <= '5' }) {
		return false
	}

	if !p.decimalDigit() {
		return false
	}

	tx.commit()

	return true
}

// decimalSeparator parses DecimalSeparator: one of . ,
func (p *parser) decimalSeparator() bool {
	return p.consumeByte('.') || p.consumeByte(',')
}

// dateTimeSeparator parses DateTimeSeparator: <SP> | T | t.
func (p *parser) dateTimeSeparator() bool {
	return p.consumeByte(' ') || p.consumeByte('T') || p.consumeByte('t')
}

// dateYear parses DateYear, either a DateFourDigitYear (four digits) or a
// DateExtendedYear (Sign followed by six digits). The presence of a sign
// selects the extended form.
func (p *parser) dateYear() bool {
	tx := p.begin()
	defer tx.end()

	digits := 4
	if p.sign() {
		digits = 6
	}

	for range digits {
		if !p.decimalDigit() {
			return false
		}
	}

	tx.capture(DateYear)
	tx.commit()

	return true
}

// dateMonth parses DateMonth: 0 NonZeroDigit | 10 | 11 | 12.
func (p *parser) dateMonth() bool {
	tx := p.begin()
	defer tx.end()

	if p.consumeByte('0') {
		if !p.nonZeroDigit() {
			return false
		}
	} else if !p.consumeString("10") &&
		!p.consumeString("11") &&
		!p.consumeString("12") {
		return false
	}

	tx.capture(DateMonth)
	tx.commit()

	return true
}

// dateDay parses DateDay:
// 0 NonZeroDigit | 1 DecimalDigit | 2 DecimalDigit | 30 | 31.
func (p *parser) dateDay() bool {
	tx := p.begin()
	defer tx.end()

	switch {
	case p.consumeByte('0'):
		if !p.nonZeroDigit() {
			return false
		}

	case p.consumeByte('1') || p.consumeByte('2'):
		if !p.decimalDigit() {
			return false
		}

	case p.consumeString("30") || p.consumeString("31"):

	default:
		return false
	}

	tx.capture(DateDay)
	tx.commit()

	return true
}

// date parses Date:
//
//	DateYear - DateMonth - DateDay
//	DateYear DateMonth DateDay
//
// A dash after the year requires a dash before the day, and its absence
// forbids one.
func (p *parser) date() bool {
	tx := p.begin()
	defer tx.end()

	if !p.dateYear() {
		return false
	}

	dashed := p.consumeByte('-')

	if !p.dateMonth() {
		return false
	}

	if dashed && !p.consumeByte('-') {
		return false
	}

	if !p.dateDay() {
		return false
	}

	tx.commit()

	return true
}

// timeHour parses TimeHour: Hour.
func (p *parser) timeHour() bool {
	tx := p.begin()
	defer tx.end()

	if !p.hour() {
		return false
	}

	tx.capture(TimeHour)
	tx.commit()

	return true
}

// timeMinute parses TimeMinute: MinuteSecond.
func (p *parser) timeMinute() bool {
	tx := p.begin()
	defer tx.end()

	if !p.minuteSecond() {
		return false
	}

	tx.capture(TimeMinute)
	tx.commit()

	return true
}

// timeSecond parses TimeSecond: MinuteSecond | 60.
func (p *parser) timeSecond() bool {
	tx := p.begin()
	defer tx.end()

	if !p.minuteSecond() && !p.consumeString("60") {
		return false
	}

	tx.capture(TimeSecond)
	tx.commit()

	return true
}

// maxFractionDigits is the number of digits FractionalPart may contain.
const maxFractionDigits = 9

// fractionalPart parses FractionalPart: one to nine DecimalDigits, matched
// greedily. It only fails when the first digit is missing, in which case
// nothing has been consumed.
func (p *parser) fractionalPart() bool {
	if !p.decimalDigit() {
		return false
	}

	for range maxFractionDigits - 1 {
		if !p.decimalDigit() {
			break
		}
	}

	return true
}

// timeFractionalPart parses TimeFractionalPart: FractionalPart.
func (p *parser) timeFractionalPart() bool {
	tx := p.begin()
	defer tx.end()

	if !p.fractionalPart() {
		return false
	}

	tx.capture(TimeFractionalPart)
	tx.commit()

	return true
}

// fraction parses Fraction: DecimalSeparator TimeFractionalPart.
func (p *parser) fraction() bool {
	tx := p.begin()
	defer tx.end()

	if !p.decimalSeparator() {
		return false
	}

	if !p.timeFractionalPart() {
		return false
	}

	tx.commit()

	return true
}

// timeFraction parses TimeFraction: Fraction.
func (p *parser) timeFraction() bool {
	return p.fraction()
}

// timeZoneOffsetRequired parses
// TimeZoneOffsetRequired: TimeZoneUTCOffset TimeZoneBracketedAnnotation[opt].
//
// UTC offsets are not recognized, so this never matches.
func (p *parser) timeZoneOffsetRequired() bool {
	return false
}

// timeZoneNameRequired parses
// TimeZoneNameRequired: TimeZoneUTCOffset[opt] TimeZoneBracketedAnnotation.
//
// Bracketed time zone names are not recognized, so this never matches.
func (p *parser) timeZoneNameRequired() bool {
	return false
}

// timeZone parses TimeZone: TimeZoneOffsetRequired | TimeZoneNameRequired.
func (p *parser) timeZone() bool {
	return p.timeZoneOffsetRequired() || p.timeZoneNameRequired()
}

// Bounds of a CalendarNameComponent.
const (
	minCalendarComponent = 3
	maxCalendarComponent = 8
)

// calendarNameComponent parses CalendarNameComponent: three to eight CalChar,
// where CalChar is Alpha or DecimalDigit.
//
// At most eight characters are consumed; any alphanumeric that follows is
// left for the caller, which then fails on it.
func (p *parser) calendarNameComponent() bool {
	tx := p.begin()
	defer tx.end()

	n := 0
	for n < maxCalendarComponent && p.consumeIf(isASCIIAlphanumeric) {
		n++
	}

	if n < minCalendarComponent {
		return false
	}

	tx.commit()

	return true
}

// calendarName parses CalendarName:
//
//	CalendarNameTail
//	CalendarNameTail : CalendarNameComponent
//	                 | CalendarNameComponent - CalendarNameTail
func (p *parser) calendarName() bool {
	tx := p.begin()
	defer tx.end()

	for {
		if !p.calendarNameComponent() {
			return false
		}

		if !p.consumeByte('-') {
			break
		}
	}

	tx.capture(CalendarName)
	tx.commit()

	return true
}

// calendarPrefix opens a Calendar annotation.
const calendarPrefix = "[u-ca="

// calendar parses Calendar: [u-ca= CalendarName ].
func (p *parser) calendar() bool {
	tx := p.begin()
	defer tx.end()

	if !p.consumeString(calendarPrefix) {
		return false
	}

	if !p.calendarName() {
		return false
	}

	if !p.consumeByte(']') {
		return false
	}

	tx.commit()

	return true
}

// timeSpec parses TimeSpec:
//
//	TimeHour
//	TimeHour : TimeMinute
//	TimeHour TimeMinute
//	TimeHour : TimeMinute : TimeSecond TimeFraction[opt]
//	TimeHour TimeMinute TimeSecond TimeFraction[opt]
//
// A colon after the hour requires colons between every following component;
// without it, components are adjacent.
func (p *parser) timeSpec() bool {
	tx := p.begin()
	defer tx.end()

	if !p.timeHour() {
		return false
	}

	if p.consumeByte(':') {
		if !p.timeMinute() {
			return false
		}

		if p.consumeByte(':') {
			if !p.timeSecond() {
				return false
			}

			p.timeFraction() // optional
		}
	} else if p.timeMinute() {
		if p.timeSecond() {
			p.timeFraction() // optional
		}
	}

	tx.commit()

	return true
}

// timeSpecSeparator parses TimeSpecSeparator: DateTimeSeparator TimeSpec.
func (p *parser) timeSpecSeparator() bool {
	tx := p.begin()
	defer tx.end()

	if !p.dateTimeSeparator() {
		return false
	}

	if !p.timeSpec() {
		return false
	}

	tx.commit()

	return true
}

// dateTime parses DateTime: Date TimeSpecSeparator[opt] TimeZone[opt].
func (p *parser) dateTime() bool {
	if !p.date() {
		return false
	}

	p.timeSpecSeparator() // optional
	p.timeZone()          // optional

	return true
}

// calendarDateTime parses CalendarDateTime: DateTime Calendar[opt].
func (p *parser) calendarDateTime() bool {
	if !p.dateTime() {
		return false
	}

	p.calendar() // optional

	return true
}

// temporalDateString parses TemporalDateString: CalendarDateTime.
func (p *parser) temporalDateString() bool {
	return p.calendarDateTime()
}
