package uni

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const combiningSample = "áb世" // a + combining acute, b, a CJK ideograph

func TestTextWidthDefault(t *testing.T) {
	assert.Equal(t, 4, TextWidth(combiningSample, nil))
	assert.Equal(t, 0, TextWidth("", nil))
}

func TestTextWidthOptions(t *testing.T) {
	star := "a☆"
	eye := "a\U0001F441"

	assert.Equal(t, 2, TextWidth(star, nil))

	eastAsian := &Options{EastAsianWidth: true}
	assert.Equal(t, 3, TextWidth(star, eastAsian))
	assert.Equal(t, 2, TextWidth(eye, eastAsian))

	wideEmoji := &Options{
		EastAsianWidth:   true,
		TreatEmojiAsWide: true,
	}
	assert.Equal(t, 3, TextWidth(eye, wideEmoji))
}

func TestRuneWidth(t *testing.T) {
	eastAsian := &Options{EastAsianWidth: true}

	assert.Equal(t, 1, RuneWidth('a', nil))
	assert.Equal(t, 2, RuneWidth('世', nil))
	assert.Equal(t, 1, RuneWidth('☆', nil))
	assert.Equal(t, 2, RuneWidth('☆', eastAsian))
}

func TestGraphemeIterator(t *testing.T) {
	iter := NewGraphemeIterator(combiningSample, nil)

	var values []string
	var starts, ends, widths []int
	for iter.Next() {
		values = append(values, iter.Value())
		starts = append(starts, iter.Start())
		ends = append(ends, iter.End())
		widths = append(widths, iter.TextWidth())
	}

	assert.Equal(t, []string{"á", "b", "世"}, values)
	assert.Equal(t, []int{0, 3, 4}, starts)
	assert.Equal(t, []int{3, 4, 7}, ends)
	assert.Equal(t, []int{1, 1, 2}, widths)
}

func TestGraphemeIteratorEmpty(t *testing.T) {
	iter := NewGraphemeIterator("", nil)
	assert.False(t, iter.Next())
}
