package scanner

import (
	"errors"
	"reflect"
	"testing"
)

func TestFinalizeBucketSubGroupsByDigest(t *testing.T) {
	results := []hashResult{
		{size: 10, order: 2, path: "/c", digest: "d1"},
		{size: 10, order: 0, path: "/a", digest: "d1"},
		{size: 10, order: 3, path: "/d", digest: "d2"},
		{size: 10, order: 1, path: "/b", digest: "d1"},
	}

	sets, warnings := finalizeBucket(10, results)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(sets) != 1 {
		t.Fatalf("expected 1 set (d2 is a singleton), got %d", len(sets))
	}
	want := []string{"/a", "/b", "/c"}
	if !reflect.DeepEqual(sets[0].Files, want) {
		t.Errorf("expected traversal order %v, got %v", want, sets[0].Files)
	}
}

func TestFinalizeBucketDropsFailedFiles(t *testing.T) {
	readErr := errors.New("gone")
	results := []hashResult{
		{size: 10, order: 0, path: "/a", digest: "d1"},
		{size: 10, order: 1, path: "/b", err: readErr},
		{size: 10, order: 2, path: "/c", digest: "d1"},
	}

	sets, warnings := finalizeBucket(10, results)
	if len(warnings) != 1 || warnings[0].Path != "/b" {
		t.Fatalf("expected one warning for /b, got %v", warnings)
	}
	if len(sets) != 1 || len(sets[0].Files) != 2 {
		t.Fatalf("expected 2-member set without /b, got %v", sets)
	}
}

func TestFinalizeBucketFailureBelowPairThreshold(t *testing.T) {
	results := []hashResult{
		{size: 10, order: 0, path: "/a", digest: "d1"},
		{size: 10, order: 1, path: "/b", err: errors.New("gone")},
	}

	sets, warnings := finalizeBucket(10, results)
	if len(sets) != 0 {
		t.Errorf("a bucket reduced below 2 entries must emit nothing, got %v", sets)
	}
	if len(warnings) != 1 {
		t.Errorf("expected one warning, got %v", warnings)
	}
}

func TestSortSetsDeterministic(t *testing.T) {
	sets := []DuplicateSet{
		{Size: 10, Files: []string{"/z/1", "/z/2"}},         // weight 20
		{Size: 100, Files: []string{"/m/1", "/m/2"}},        // weight 200
		{Size: 10, Files: []string{"/a/1", "/a/2"}},         // weight 20, earlier path
		{Size: 50, Files: []string{"/k/1", "/k/2", "/k/3"}}, // weight 150
	}

	sortSets(sets)

	if sets[0].Size != 100 || sets[1].Size != 50 {
		t.Errorf("expected descending weight, got %+v", sets)
	}
	if sets[2].Files[0] != "/a/1" || sets[3].Files[0] != "/z/1" {
		t.Errorf("expected tie broken by first path, got %+v", sets)
	}
}
