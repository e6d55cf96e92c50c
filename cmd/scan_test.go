package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestVerboseEventsKeepLinesWhole(t *testing.T) {
	var buf bytes.Buffer
	events := verboseEvents(&buf)

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				events.FileHashed(fmt.Sprintf("/tree/%d/%d.bin", n, j), "feedbeef")
			}
		}(i)
	}
	wg.Wait()

	out := strings.TrimRight(buf.String(), "\n")
	lines := strings.Split(out, "\n")
	if len(lines) != workers*perWorker {
		t.Fatalf("expected %d log lines, got %d", workers*perWorker, len(lines))
	}
	for _, line := range lines {
		if strings.Count(line, "/tree/") != 1 {
			t.Fatalf("interleaved or malformed log line: %q", line)
		}
	}
}
