// ABOUTME: Shared error values for the audio pipeline
// ABOUTME: Defines the invalid-parameter sentinel matched across packages
package audio

import "errors"

// ErrInvalidParameter indicates an out-of-range or unsupported numeric
// option. Parameter checks run before any rendering begins, so a render
// pass is never wasted on a request that cannot be encoded.
var ErrInvalidParameter = errors.New("invalid parameter")
