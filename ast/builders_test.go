package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewFloat(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0.1, "0.1"},
		{2.5, "2.5"},
		{-3, "-3"},
		{1e21, "1000000000000000000000"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, NewFloat(test.in).Text())
		})
	}
}

func TestNewTextList(t *testing.T) {
	l := NewTextList("a", "b c", "")
	assert.Equal(t, List{Text("a"), Text("b c"), Text("")}, l)

	strs, ok := l.Strings()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b c", ""}, strs)
}

func TestNewDict(t *testing.T) {
	d := NewDict(
		E("name", Text("folk")),
		E("port", NewInt(4273)),
		E("name", Text("jim")),
	)

	assert.Equal(t, []string{"name", "port"}, d.Keys())
	name, ok := d.GetText("name")
	assert.True(t, ok)
	assert.Equal(t, "jim", name)
}

func TestNewList(t *testing.T) {
	l := NewList(Text("a"), NewTextList("b", "c"))
	assert.Equal(t, 2, len(l))
	assert.Equal(t, KindList, l[1].Kind())
}
