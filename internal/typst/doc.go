// Package typst contains the output side of the translator: escaping of text
// for the different Typst lexical contexts and the intermediate representation
// (IR) that is rendered into Typst source.
//
// The IR is a small closed set of element types. Elements are built while the
// input tree is walked; Render turns a finished element into text. Rendering is
// pure, so an element can be rendered more than once with identical output.
package typst
