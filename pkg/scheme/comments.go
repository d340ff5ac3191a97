package scheme

// stripComments removes `//` line comments and `/* */` block comments.
// Newlines inside block comments are preserved so the remaining content
// keeps its line structure. An unterminated block comment swallows the rest
// of the input, matching the usual C-family behavior.
func stripComments(content []byte) []byte {
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		b := content[i]
		if b != '/' || i+1 >= len(content) {
			out = append(out, b)
			continue
		}
		switch content[i+1] {
		case '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			if i < len(content) {
				out = append(out, '\n')
			}
		case '*':
			i += 2
			for i < len(content) {
				if content[i] == '*' && i+1 < len(content) && content[i+1] == '/' {
					i++
					break
				}
				if content[i] == '\n' {
					out = append(out, '\n')
				}
				i++
			}
		default:
			out = append(out, b)
		}
	}
	return out
}
