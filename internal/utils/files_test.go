package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.svg")
	if err := EnsureParentDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if err := SafeWriteFile(path, []byte("<svg/>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "<svg/>" {
		t.Fatalf("read back %q, %v", b, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" United States, Canada ,,")
	want := []string{"United States", "Canada"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList = %q, want %q", got, want)
	}
	if SplitList("") != nil {
		t.Fatalf("empty input should yield nil")
	}
}

func TestExt(t *testing.T) {
	if got := Ext("data/Survey.XLSX"); got != "xlsx" {
		t.Fatalf("Ext = %q", got)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected json %q", b)
	}
}
