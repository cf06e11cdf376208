// Package lang implements the pen command language: tokenizing a line,
// parsing it into a Command, validating it against the pen and the canvas
// bounds, and executing it onto a canvas.Surface.
//
// A program is one command per line:
//
//	moveto 10,10
//	circle 5
//	pen red
//	fill on
//	rectangle 20,20
//
// Parse and Validate are pure and shared by the dry-run checker and the
// Interpreter, so a program that passes Check runs without error on the
// same pen state.
package lang
