// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package matcher implements the string matchers used by filter patterns.

Supported Format

	string
	glob
	regexp

The string matcher reports whether the given value equals to the string ( use == ).

The glob matcher reports whether the given value matches the wildcard pattern.
'*' matches any sequence of characters including '/', '?' matches any single character
and '[...]' is a character class. '\' escapes the next character.

The regexp matcher reports whether the given value matches the RegExp pattern ( use regexp.Match ).
The RegExp syntax is described at https://golang.org/pkg/regexp/syntax/.

Short syntax

	= <expr>    string
	* <expr>    glob
	~ <expr>    regexp

Long syntax

	string:<expr>
	glob:<expr>
	regexp:<expr>

A line without a format prefix is an exact string.
*/
package matcher
