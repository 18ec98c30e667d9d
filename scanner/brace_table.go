// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

// delimiterPairs maps each opening delimiter that has a distinct closing
// counterpart. Raku accepts any paired bracket Unicode defines; this table
// carries the pairs that occur in real-world source. Openers absent from
// the table close themselves.
var delimiterPairs = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
	'«': '»',
	'‘': '’',
	'“': '”',
	'‹': '›',
	'⁅': '⁆',
	'⁽': '⁾',
	'₍': '₎',
	'⌈': '⌉',
	'⌊': '⌋',
	'❨': '❩',
	'❪': '❫',
	'❬': '❭',
	'❮': '❯',
	'❰': '❱',
	'❲': '❳',
	'❴': '❵',
	'⟅': '⟆',
	'⟦': '⟧',
	'⟨': '⟩',
	'⟪': '⟫',
	'⟬': '⟭',
	'⟮': '⟯',
	'⦃': '⦄',
	'⦅': '⦆',
	'⦇': '⦈',
	'⦉': '⦊',
	'⦋': '⦌',
	'⦑': '⦒',
	'⦓': '⦔',
	'⦕': '⦖',
	'⦗': '⦘',
	'⧘': '⧙',
	'⧚': '⧛',
	'⧼': '⧽',
	'⸢': '⸣',
	'⸤': '⸥',
	'⸦': '⸧',
	'⸨': '⸩',
	'〈': '〉',
	'《': '》',
	'「': '」',
	'『': '』',
	'【': '】',
	'〔': '〕',
	'〖': '〗',
	'〘': '〙',
	'〚': '〛',
	'﹙': '﹚',
	'﹛': '﹜',
	'﹝': '﹞',
	'（': '）',
	'［': '］',
	'｛': '｝',
	'｟': '｠',
	'｢': '｣',
}

// ClosingDelimiter resolves the closing delimiter paired with an opening
// one. The mapping is total: codepoints without a distinct counterpart
// close themselves, so '|' yields '|'.
func ClosingDelimiter(open rune) rune {
	if closing, ok := delimiterPairs[open]; ok {
		return closing
	}
	return open
}

// PairedOpener reports whether the rune opens a pair with a distinct
// closing delimiter.
func PairedOpener(r rune) bool {
	_, ok := delimiterPairs[r]
	return ok
}
