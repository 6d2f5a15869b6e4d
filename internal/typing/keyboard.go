package typing

import "unicode"

// Keys a typist could plausibly hit instead of the intended one.
// Characters without an entry are never mistyped.
var neighbors = map[rune][]rune{
	'a': {'s', 'q', 'z'},
	'b': {'v', 'g', 'n'},
	'c': {'x', 'v', 'd'},
	'd': {'s', 'f', 'e'},
	'e': {'w', 'r', 'd'},
	'f': {'d', 'g', 'r'},
	'g': {'f', 'h', 't'},
	'h': {'g', 'j', 'y'},
	'i': {'u', 'o', 'k'},
	'j': {'h', 'k', 'u'},
	'k': {'j', 'l', 'i'},
	'l': {'k', ';', 'o'},
	'm': {'n', ',', 'j'},
	'n': {'b', 'm', 'h'},
	'o': {'i', 'p', 'l'},
	'p': {'o', '[', ';'},
	'q': {'w', 'a', '1'},
	'r': {'e', 't', 'f'},
	's': {'a', 'd', 'w'},
	't': {'r', 'y', 'g'},
	'u': {'y', 'i', 'j'},
	'v': {'c', 'b', 'f'},
	'w': {'q', 'e', 's'},
	'x': {'z', 'c', 's'},
	'y': {'t', 'u', 'h'},
	'z': {'a', 'x', 's'},
}

// Neighbors returns the keys adjacent to r, matched case-insensitively.
func Neighbors(r rune) []rune {
	keys, ok := neighbors[unicode.ToLower(r)]
	if !ok {
		return nil
	}
	return append([]rune{}, keys...)
}

func typoable(r rune) bool {
	_, ok := neighbors[unicode.ToLower(r)]
	return ok
}
