package mesh

import "errors"

// ErrMalformedFile indicates a truncated binary STL payload or an
// unparseable ASCII STL stream.
var ErrMalformedFile = errors.New("mesh: malformed STL file")

// ErrUnsupportedFormat indicates the input has zero triangles after
// parsing (e.g. an empty or non-STL file that didn't otherwise fail).
// The pipeline classifies this under the EmptyMesh error kind (§7).
var ErrUnsupportedFormat = errors.New("mesh: unsupported or empty STL file")
