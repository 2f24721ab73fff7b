// Package match decides whether an app title matches a search query.
//
// A query is normalized once (NFKC, locale-aware lowercasing, whitespace
// tokenization) and then tested against many titles. A title matches when
// every query token matches it:
//   - PolicyWordPrefix (default): the token must start at a word start.
//     Word starts follow spaces and punctuation or a letter/digit
//     transition ("Chess2"), and every ideographic character starts a
//     word. Letter case plays no part, so "MyCloud" is one word.
//   - PolicySubstring: the token may occur anywhere.
//
// "cal" therefore matches "Calendar" under both policies, while "al" only
// matches it under PolicySubstring.
package match
