package action

import "testing"

func TestRenderTable(t *testing.T) {
	got := renderTable([]row{{"a", 1}, {"bb", 0}})

	// name column = longest name + 1, states padded to width 3, no
	// trailing blank line
	want := "a  : 1   \nbb : 0   "
	if got != want {
		t.Errorf("renderTable:\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := renderTable(nil); got != "" {
		t.Errorf("renderTable(nil) = %q, want empty", got)
	}
}
