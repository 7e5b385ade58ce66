package parsing

// Repair completes JSON that was cut off mid-generation. A single scan tracks
// whether the cursor sits inside a string (escaped quotes do not toggle the
// flag) and stacks the closer for every bracket opened outside of strings.
// At end of input an open string gets its closing quote, then the stack
// unwinds last-in-first-out. Everything fully present before the truncation
// point is left byte-identical: Repair only ever appends.
func Repair(raw string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '}' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == ']' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	out := []byte(raw)
	if inString {
		out = append(out, '"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, stack[i])
	}
	return string(out)
}
