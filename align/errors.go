package align

import "errors"

// ErrNoImprovement reports that no shift pair scored above the degenerate
// zero-fitness baseline, typically because the inputs carry no correlated
// pulse content.
var ErrNoImprovement = errors.New("align: no shift pair improves on the degenerate baseline")
