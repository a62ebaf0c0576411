/*
Package fontregistry manages a registry for loaded fonts.

The registry owns the lifetime of fonts. Components holding per-font state
(for example shaper caches) install a release hook, which the registry calls
exactly once when a font is released.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'basicshape.fonts'
func tracer() tracing.Trace {
	return tracing.Select("basicshape.fonts")
}
