// Package uni measures text for monospace terminals: grapheme clusters (uax29) and their cell widths (go-runewidth).
package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation. Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats ambiguous East Asian code points as 2 wide. Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the cell width of str. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// RuneWidth returns the cell width of r. If opts is nil, locale is assumed to be non-East Asian.
func RuneWidth(r rune, opts *Options) int {
	return conditionFromOptions(opts).RuneWidth(r)
}

// Iterator iterates over the grapheme clusters of a string.
type Iterator struct {
	iter graphemes.Iterator[string]
	cond *runewidth.Condition
}

// NewGraphemeIterator returns an iterator over the grapheme clusters of str. If opts is nil, locale is assumed to be non-East Asian.
func NewGraphemeIterator(str string, opts *Options) *Iterator {
	return &Iterator{
		iter: graphemes.FromString(str),
		cond: conditionFromOptions(opts),
	}
}

// Next advances to the next cluster and reports whether there is one.
func (it *Iterator) Next() bool {
	return it.iter.Next()
}

// Value is the current cluster.
func (it *Iterator) Value() string {
	return it.iter.Value()
}

// Start returns the byte position of the current cluster in the original string.
func (it *Iterator) Start() int {
	return it.iter.Start()
}

// End returns the byte position after the current cluster. Allows slicing [Start(), End()).
func (it *Iterator) End() int {
	return it.iter.End()
}

// TextWidth returns the cell width of the current cluster.
func (it *Iterator) TextWidth() int {
	return it.cond.StringWidth(it.iter.Value())
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}
	return cond
}
