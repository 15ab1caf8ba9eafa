// Package keys provides key normalization and placeholder syntax for
// comment variables.
//
// A variable is addressed by the path of configuration keys leading to it.
// The path is normalized into a single identifier:
//
//	["Comment", "Is Blue"]  ->  COMMENT#IS_BLUE   (source "Comment > Is Blue")
//
// and referenced from comments or composed values by a placeholder token:
//
//	$COMMENT#COMMENT#IS_BLUE
package keys
