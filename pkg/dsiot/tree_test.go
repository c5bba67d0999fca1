package dsiot

import (
	"encoding/json"
	"errors"
	"testing"
)

func testTree() *Node {
	return branch("dgc_status",
		branch("e_1002",
			branch("e_3001",
				scaledLeaf("p_02", "30", &Metadata{Step: 0xF5, Min: "24", Max: "40"}),
				leaf("p_09", "0A00"),
			),
		),
	)
}

func TestFindAndExtract(t *testing.T) {
	root := testTree()

	if s, ok := ExtractString(root, "e_1002", "e_3001", "p_09"); !ok || s != "0A00" {
		t.Errorf("ExtractString = %q, %v", s, ok)
	}
	if f, ok := ExtractFloat(root, "e_1002", "e_3001", "p_02"); !ok || f != 24 {
		t.Errorf("ExtractFloat = %v, %v", f, ok)
	}
	if _, ok := ExtractString(root, "e_1002", "e_9999", "p_01"); ok {
		t.Error("absent path reported present")
	}
}

func TestExtractMinMax(t *testing.T) {
	root := testTree()
	min, max, ok := ExtractMinMax(root, "e_1002", "e_3001", "p_02")
	if !ok || min != 18 || max != 32 {
		t.Errorf("ExtractMinMax = %v, %v, %v", min, max, ok)
	}
	if _, _, ok := ExtractMinMax(root, "e_1002", "e_3001", "p_09"); ok {
		t.Error("range reported on field without one")
	}
}

func TestInjectPath(t *testing.T) {
	root := testTree()
	frag, err := InjectPath(root, []string{"e_1002", "e_3001", "p_09"}, "0300")
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := ExtractString(frag, "e_1002", "e_3001", "p_09"); !ok || s != "0300" {
		t.Errorf("fragment value = %q, %v", s, ok)
	}
	// only the addressed leaf is carried
	if Find(frag, "e_1002", "e_3001", "p_02") != nil {
		t.Error("fragment carries unrelated leaf")
	}

	_, err = InjectPath(root, []string{"e_1002", "e_3001", "p_99"}, "00")
	if !errors.Is(err, ErrFieldAbsent) {
		t.Errorf("unresolvable path error = %v", err)
	}
}

func TestMergeTrees(t *testing.T) {
	dst := testTree()
	src := branch("dgc_status",
		branch("e_1002",
			branch("e_3001",
				leaf("p_09", "0B00"),
				leaf("p_01", "0100"),
			),
			branch("e_A002", leaf("p_01", "01")),
		),
	)
	MergeTrees(dst, src)

	if s, _ := ExtractString(dst, "e_1002", "e_3001", "p_09"); s != "0B00" {
		t.Errorf("same-name leaf not overwritten: %q", s)
	}
	if s, _ := ExtractString(dst, "e_1002", "e_3001", "p_02"); s != "30" {
		t.Errorf("unrelated leaf touched: %q", s)
	}
	if s, ok := ExtractString(dst, "e_1002", "e_3001", "p_01"); !ok || s != "0100" {
		t.Errorf("new leaf not appended: %q, %v", s, ok)
	}
	if s, ok := ExtractString(dst, "e_1002", "e_A002", "p_01"); !ok || s != "01" {
		t.Errorf("new branch not appended: %q, %v", s, ok)
	}
}

func TestNodeWireShape(t *testing.T) {
	raw := `{"pn":"e_3001","pch":[{"pn":"p_02","pv":"30","md":{"st":245,"mi":"24","mx":"40"}}]}`
	var n Node
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatal(err)
	}
	if f, ok := ExtractFloat(&n, "p_02"); !ok || f != 24 {
		t.Errorf("decoded wire node = %v, %v", f, ok)
	}
}
