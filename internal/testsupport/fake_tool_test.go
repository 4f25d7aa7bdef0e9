package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFakeToolConcatJoinsInListOrder(t *testing.T) {
	dir := t.TempDir()
	tool := NewFakeTool()
	ctx := context.Background()

	seg0 := filepath.Join(dir, "it's part0.mp4")
	seg1 := filepath.Join(dir, "part1.mp4")
	if err := tool.Run(ctx, "ffmpeg", "-ss", "a", "-i", "src", "-t", "b", seg0); err != nil {
		t.Fatal(err)
	}
	if err := tool.Run(ctx, "ffmpeg", "-ss", "c", "-i", "src", "-t", "d", seg1); err != nil {
		t.Fatal(err)
	}
	list := filepath.Join(dir, "files.txt")
	content := "# segments\nfile '" + filepath.Join(dir, `it'\''s part0.mp4`) + "'\nfile '" + seg1 + "'\n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.mp4")
	if err := tool.Run(ctx, "ffmpeg", "-f", "concat", "-safe", "0", "-i", list, "-c", "copy", out); err != nil {
		t.Fatal(err)
	}
	got := ReadLines(t, out)
	if len(got) != 2 || got[0] != "cut a-b" || got[1] != "cut c-d" {
		t.Fatalf("unexpected concat output %q", got)
	}
	if tool.CallCount() != 3 || !tool.Calls()[2].Concat {
		t.Fatalf("unexpected calls %+v", tool.Calls())
	}
	if tool.Peak() != 1 {
		t.Fatalf("sequential calls should peak at 1, got %d", tool.Peak())
	}
}
