package main

import "testing"

func TestCheckPassesOnCleanWorkload(t *testing.T) {
	checkOps = 3000
	checkMaxSize = 256
	checkPoolSize = 1 << 16
	checkSeed = 7

	output, err := captureOutput(t, func() error {
		return runCheck(nil, nil)
	})
	if err != nil {
		t.Fatalf("runCheck: %v\noutput: %s", err, output)
	}
	assertContains(t, output, "ran 3000 ops")
}
