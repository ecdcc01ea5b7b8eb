// Package layout locates the letter grid and the word list on a puzzle page.
//
// Detection works on ink projections only. Three passes run in order:
//
//  1. A column profile over the whole page splits it into blocks. The widest
//     block is the grid, the second widest (if wide enough) the word list.
//  2. A row profile inside the grid's columns finds the horizontal rules.
//     A row counts as a rule when at least half of the grid width is ink.
//  3. A column profile inside the grid's rows finds the vertical rules.
//
// Cells are the rectangles strictly between consecutive rules. The word
// list is then cut into text lines by a row profile and each line into words
// by a column profile with a smaller merge gap.
//
// The grid/word-list split is positional: the thickest column block wins.
// Pages whose word list is wider than the grid are misclassified.
//
// # Coordinate System
//
// All coordinates are absolute page pixels with the origin at the top-left
// corner. Box widths and heights count pixels, so a Box covers
// [X, X+Width) × [Y, Y+Height).
package layout
