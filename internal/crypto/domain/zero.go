package domain

// Zero overwrites b with zeros. Used for derived keys and decoded secrets once they
// are no longer needed.
func Zero(b []byte) {
	clear(b)
}
