// Package glyph cuts grid cells and list words into normalized letter images.
//
// A grid cell yields exactly one glyph: the bounding box of the largest ink
// component inside the cell, or the whole cell when it is blank. A word
// yields one glyph per letter: its ink components, left to right, with
// components wider than one letter split at their thinnest columns.
//
// Every glyph is scaled isotropically and centered on a white square canvas
// so the recognizer sees letters at one size regardless of the source font.
//
// Components are 4-connected and never pre-merged, so the dot of an i or j
// becomes its own glyph.
package glyph
