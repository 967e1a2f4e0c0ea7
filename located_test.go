package strictjson_test

import (
	"testing"

	strictjson "github.com/reoring/strictjson"
)

func TestFlattenGroupsSiblingPayloads(t *testing.T) {
	items := []strictjson.Located[string]{
		strictjson.InField("a", []strictjson.Located[string]{
			strictjson.Here("first"),
			strictjson.Here("second"),
		}),
	}
	groups := strictjson.Flatten(items)
	if len(groups) != 1 || groups[0].Path != "/a" {
		t.Fatalf("got %v", groups)
	}
	if len(groups[0].Payloads) != 2 || groups[0].Payloads[0] != "first" || groups[0].Payloads[1] != "second" {
		t.Fatalf("sibling payloads lost or reordered: %v", groups[0].Payloads)
	}
}

func TestFlattenMergesSamePathAcrossTrees(t *testing.T) {
	items := []strictjson.Located[string]{
		strictjson.InField("a", []strictjson.Located[string]{strictjson.Here("x")}),
		strictjson.InField("a", []strictjson.Located[string]{strictjson.Here("y")}),
	}
	groups := strictjson.Flatten(items)
	if len(groups) != 1 || len(groups[0].Payloads) != 2 {
		t.Fatalf("payloads at the same path must merge, got %v", groups)
	}
}

func TestFlattenSortsByPath(t *testing.T) {
	items := []strictjson.Located[int]{
		strictjson.InField("b", []strictjson.Located[int]{strictjson.Here(2)}),
		strictjson.Here(0),
		strictjson.AtIndex(3, []strictjson.Located[int]{strictjson.Here(1)}),
	}
	groups := strictjson.Flatten(items)
	if len(groups) != 3 {
		t.Fatalf("got %v", groups)
	}
	if groups[0].Path != "" || groups[1].Path != "/3" || groups[2].Path != "/b" {
		t.Fatalf("paths out of order: %q %q %q", groups[0].Path, groups[1].Path, groups[2].Path)
	}
}

func TestFlattenEscapesPointerSegments(t *testing.T) {
	items := []strictjson.Located[int]{
		strictjson.InField("a/b", []strictjson.Located[int]{
			strictjson.InField("c~d", []strictjson.Located[int]{strictjson.Here(1)}),
		}),
	}
	groups := strictjson.Flatten(items)
	if len(groups) != 1 || groups[0].Path != "/a~1b/c~0d" {
		t.Fatalf("got %v", groups)
	}
}

func TestFlattenNestedIndices(t *testing.T) {
	items := []strictjson.Located[int]{
		strictjson.InField("rows", []strictjson.Located[int]{
			strictjson.AtIndex(0, []strictjson.Located[int]{strictjson.Here(1)}),
			strictjson.AtIndex(2, []strictjson.Located[int]{strictjson.Here(2)}),
		}),
	}
	groups := strictjson.Flatten(items)
	if len(groups) != 2 || groups[0].Path != "/rows/0" || groups[1].Path != "/rows/2" {
		t.Fatalf("got %v", groups)
	}
}
