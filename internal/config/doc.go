// Package config provides the variables document: its YAML schema, parsing,
// and the schema check that runs before resolution.
//
// # Document Overview
//
//	data:
//	  Comment:
//	    Is Blue: "the sky is blue"
//	    Is Red: "the sky is red"
//	  Summary: "$COMMENT#COMMENT#IS_BLUE $COMMENT#COMMENT#IS_RED"
//	ignores:
//	  - "**/vendor/**"
//	variations:
//	  fr:
//	    Comment:
//	      Is Blue: "le ciel est bleu"
//
// The data section is kept as an ordered Tree so diagnostics follow the
// document order. JSON documents are accepted too, since JSON is a subset
// of YAML.
package config
