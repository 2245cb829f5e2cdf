package safe

// ToString safely converts a byte slice to a string. The returned string
// does not alias b, so b may be reused or freed afterwards.
func ToString(b []byte) string {
	return string(b)
}
