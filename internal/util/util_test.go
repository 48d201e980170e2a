package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_OrderedKeys_SortsAscending(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	assert.Equal(t, []string{"a", "b", "c"}, OrderedKeys(m))
}

func Test_OrderedKeys_EmptyMapGivesEmptySlice(t *testing.T) {
	m := map[string]int{}
	assert.Empty(t, OrderedKeys(m))
}

func Test_MakeTextList_OneItem(t *testing.T) {
	assert.Equal(t, "a", MakeTextList([]string{"a"}))
}

func Test_MakeTextList_TwoItems(t *testing.T) {
	assert.Equal(t, "a and b", MakeTextList([]string{"a", "b"}))
}

func Test_MakeTextList_ThreeItemsUsesOxfordComma(t *testing.T) {
	assert.Equal(t, "a, b, and c", MakeTextList([]string{"a", "b", "c"}))
}

func Test_MakeTextList_EmptyIsEmptyString(t *testing.T) {
	assert.Equal(t, "", MakeTextList(nil))
}
