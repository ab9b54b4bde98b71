package rex

import "io"

// MatchReader reports whether the contents of r contain any match of re.
// The reader is consumed in full before matching begins, since the VM
// needs random access into the input to build capture closures.
func (re *Regexp) MatchReader(r io.Reader) (bool, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return false, err
	}
	return re.Match(b), nil
}
