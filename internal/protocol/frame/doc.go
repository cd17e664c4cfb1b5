// Package frame owns the PRT-7 line grammar.
//
// Ownership boundary:
// - text line -> Frame parsing
// - parse failure taxonomy
// - applying a Frame to rotor and payload state
//
// Wire format, one frame per line, whitespace around fields ignored:
//
//	L,<letter>   decode one letter
//	L,Space      decode a space
//	M,<integer>  rotate the rotor by a signed amount
package frame
