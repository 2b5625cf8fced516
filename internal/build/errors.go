package build

import "errors"

// Sentinel errors classifying document failures. They are wrapped with the
// document and the cause at the call site.
var (
	ErrSource    = errors.New("typstbuilder: source error")
	ErrTranslate = errors.New("typstbuilder: translate error")
	ErrAssemble  = errors.New("typstbuilder: assemble error")
)
