package emvqr

const hexTableUpper = "0123456789ABCDEF"

// encodeHex16 writes v as four uppercase hex digits into dst.
func encodeHex16(dst []byte, v uint16) {
	dst[0] = hexTableUpper[v>>12&0x0f]
	dst[1] = hexTableUpper[v>>8&0x0f]
	dst[2] = hexTableUpper[v>>4&0x0f]
	dst[3] = hexTableUpper[v&0x0f]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return false
		}
	}
	return true
}

// firstNonPrintable returns the index of the first byte outside printable
// ASCII (32-126), or -1.
func firstNonPrintable(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] > 126 {
			return i
		}
	}
	return -1
}

func isValidTag(tag string) bool {
	return len(tag) == 2 && isDigits(tag)
}

// truncate cuts an ASCII string to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
