package wei

import "errors"

// errInvalidEncoding is returned by [Curve.Import] for any malformed or
// non-canonical point encoding -- wrong length, out-of-range coordinate,
// off-curve point, or a decompressed y that is not actually a square.
// spec.md section 7 groups all of these under "Encoding errors."
var errInvalidEncoding = errors.New("wei: malformed point encoding")
