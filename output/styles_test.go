package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles == nil {
		t.Fatal("NewStyles should return non-nil Styles")
	}

	if styles.output == nil {
		t.Error("Styles should have non-nil output")
	}
}

func TestStylesKey(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Key("channel-0")

	if !strings.Contains(result, "channel-0") {
		t.Errorf("Key() result should contain key, got: %s", result)
	}
}

func TestStylesWord(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	for _, style := range []string{"BARE", "BRACED", "QUOTED", "MIXED"} {
		result := styles.Word(style, "a b")
		if !strings.Contains(result, "a b") {
			t.Errorf("Word(%s) result should contain text, got: %s", style, result)
		}
	}

	// Bare words are never decorated.
	if got := styles.Word("BARE", "plain"); got != "plain" {
		t.Errorf("Word(BARE) should be plain, got: %q", got)
	}
}

func TestStylesNumber(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Number("100.5")

	if !strings.Contains(result, "100.5") {
		t.Errorf("Number() result should contain number, got: %s", result)
	}
}

func TestStylesKeyword(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Keyword("balance")

	// Should contain the keyword
	if !strings.Contains(result, "balance") {
		t.Errorf("Keyword() result should contain keyword, got: %s", result)
	}
}

func TestStylesDim(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Dim("dimmed text")

	// Should contain the text
	if !strings.Contains(result, "dimmed text") {
		t.Errorf("Dim() result should contain text, got: %s", result)
	}
}

func TestStylesTiming(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	t.Run("FastOperation", func(t *testing.T) {
		result := styles.Timing("5ms", false)

		// Should contain the timing
		if !strings.Contains(result, "5ms") {
			t.Errorf("Timing() result should contain timing, got: %s", result)
		}
	})

	t.Run("SlowOperation", func(t *testing.T) {
		result := styles.Timing("500ms", true)

		// Should contain the timing
		if !strings.Contains(result, "500ms") {
			t.Errorf("Timing() result should contain timing, got: %s", result)
		}
	})
}

func TestNewPlainStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewPlainStyles(&buf)

	for _, result := range []string{
		styles.Key("ok"),
		styles.Number("ok"),
		styles.Word("BRACED", "ok"),
		styles.Timing("ok", true),
	} {
		if result != "ok" {
			t.Errorf("plain styles should not add escape codes, got: %q", result)
		}
	}
}
