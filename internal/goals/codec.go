package goals

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Persisted records look like
//
//	<Kind>:<name>,<value>,<completed>[,<extra1>,<extra2>]
//
// where the extras are targetCount,bonusValue for checklists and
// targetProgress,progressValue for progress goals. Names are written as-is,
// so a name containing ',' or ':' does not survive a round trip.

const minRecordFields = 3

// MarshalLine renders g as a single record without the trailing newline.
func MarshalLine(g Goal) string {
	var sb strings.Builder
	sb.WriteString(string(g.Kind))
	sb.WriteString(":")
	sb.WriteString(g.Name)
	sb.WriteString(",")
	sb.WriteString(strconv.Itoa(g.Value))
	sb.WriteString(",")
	sb.WriteString(formatBool(g.Completed))

	switch g.Kind {
	case KindChecklist:
		sb.WriteString(fmt.Sprintf(",%d,%d", g.TargetCount, g.BonusValue))
	case KindProgress:
		sb.WriteString(fmt.Sprintf(",%d,%d", g.TargetProgress, g.ProgressValue))
	}
	return sb.String()
}

// Encode writes one record per goal, in order.
func Encode(w io.Writer, goals []Goal) error {
	bw := bufio.NewWriter(w)
	for _, g := range goals {
		if _, err := bw.WriteString(MarshalLine(g) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseLine parses a single record.
func ParseLine(line string) (*Goal, error) {
	kindText, rest, ok := strings.Cut(line, ":")
	if !ok {
		return nil, &RecordError{Text: line, Message: "missing kind separator ':'", Cause: ErrMalformedRecord}
	}

	fields := strings.Split(rest, ",")
	if len(fields) < minRecordFields {
		return nil, &RecordError{
			Text:    line,
			Message: fmt.Sprintf("expected at least %d fields, got %d", minRecordFields, len(fields)),
			Cause:   ErrMalformedRecord,
		}
	}

	kind, err := ParseKind(kindText)
	if err != nil {
		return nil, &RecordError{
			Text:    line,
			Message: "unknown goal kind",
			Cause:   fmt.Errorf("%w: %w", ErrMalformedRecord, err),
		}
	}

	value, err := parseIntField(line, "value", fields[1])
	if err != nil {
		return nil, err
	}

	completed, err := parseBoolField(line, fields[2])
	if err != nil {
		return nil, err
	}

	g := &Goal{Kind: kind, Name: fields[0], Value: value, Completed: completed}
	if !kind.HasExtras() {
		return g, nil
	}

	if len(fields) < minRecordFields+2 && isLegacyKind(kindText) {
		// "<Kind>Goal" records were written without extras; they load as zero.
		return g, nil
	}
	if len(fields) < minRecordFields+2 {
		return nil, &RecordError{
			Text:    line,
			Message: fmt.Sprintf("%s records need 5 fields, got %d", kind, len(fields)),
			Cause:   ErrMalformedRecord,
		}
	}

	first, err := parseIntField(line, "extra1", fields[3])
	if err != nil {
		return nil, err
	}
	second, err := parseIntField(line, "extra2", fields[4])
	if err != nil {
		return nil, err
	}

	if kind == KindChecklist {
		g.TargetCount, g.BonusValue = first, second
	} else {
		g.TargetProgress, g.ProgressValue = first, second
	}
	return g, nil
}

// Decode parses every non-blank line of r. The first bad record aborts the decode.
func Decode(r io.Reader) ([]Goal, error) {
	var out []Goal

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		g, err := ParseLine(line)
		if err != nil {
			if recErr, ok := err.(*RecordError); ok {
				recErr.Line = lineNo
			}
			return nil, err
		}
		out = append(out, *g)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return out, nil
}

func parseIntField(line, field, text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &RecordError{
			Text:    line,
			Message: fmt.Sprintf("field %s", field),
			Cause:   fmt.Errorf("%w: %w", ErrInvalidNumericField, err),
		}
	}
	return n, nil
}

func parseBoolField(line, text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &RecordError{
		Text:    line,
		Message: fmt.Sprintf("completed flag %q is not True or False", text),
		Cause:   ErrMalformedRecord,
	}
}

func isLegacyKind(kindText string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(kindText)), "goal")
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
