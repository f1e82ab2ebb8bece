package horizons

import "strings"

// Sentinel markers bounding the machine-parseable section of an ephemeris
// response. Fixed literals in the service's output convention.
const (
	startMarker = "$$SOE"
	endMarker   = "$$EOE"
)

// payload is the framed data section of a response: the lines between the
// sentinels, plus the header text kept for error diagnostics only.
type payload struct {
	header []string
	lines  []string
}

// frameStates for framePayload. The error outcome (no start marker before
// input exhaustion) is a first-class result, not a special case.
type frameState int

const (
	awaitingStart frameState = iota
	inPayload
	frameDone
)

// framePayload isolates the data section of raw response text. A missing
// start marker is a framing error carrying the leading text, which usually
// contains the service's own explanation (e.g. an ambiguous object
// specifier). A start marker immediately followed by the end marker is a
// valid zero-row payload.
func framePayload(text string) (payload, error) {
	var p payload
	state := awaitingStart

	for _, line := range strings.Split(text, "\n") {
		switch state {
		case awaitingStart:
			if strings.TrimSpace(line) == startMarker {
				state = inPayload
				continue
			}
			p.header = append(p.header, line)
		case inPayload:
			if strings.TrimSpace(line) == endMarker {
				state = frameDone
				continue
			}
			p.lines = append(p.lines, line)
		case frameDone:
			// Footer text (units legend, citations) is ignored.
		}
	}

	switch state {
	case awaitingStart:
		return payload{}, stageErr(StageFrame, headerContext(p.header), ErrNoStartMarker)
	case inPayload:
		return payload{}, stageErr(StageFrame, headerContext(p.header), ErrNoEndMarker)
	}
	return p, nil
}

// headerContext condenses header text for error messages. The service puts
// its explanation near the end of the header, so keep the tail.
func headerContext(header []string) string {
	var kept []string
	for _, line := range header {
		if s := strings.TrimSpace(line); s != "" {
			kept = append(kept, s)
		}
	}
	const maxLines = 8
	if len(kept) > maxLines {
		kept = kept[len(kept)-maxLines:]
	}
	return strings.Join(kept, " | ")
}
