package main

import (
	"strconv"
	"testing"

	"github.com/Mistuke/tlsf"
)

func TestSizeClassTextOutput(t *testing.T) {
	jsonOut = false
	defer func() { jsonOut = false }()

	wantFL, wantSL := tlsf.SizeClass(420)

	output, err := captureOutput(t, func() error {
		return runSizeClass(nil, []string{"420"})
	})
	if err != nil {
		t.Fatalf("runSizeClass: %v", err)
	}
	assertContains(t, output, "size=420")
	assertContains(t, output, "fl="+strconv.Itoa(wantFL))
	assertContains(t, output, "sl="+strconv.Itoa(wantSL))
}

func TestSizeClassJSONOutput(t *testing.T) {
	jsonOut = true
	defer func() { jsonOut = false }()

	output, err := captureOutput(t, func() error {
		return runSizeClass(nil, []string{"4096"})
	})
	if err != nil {
		t.Fatalf("runSizeClass: %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, `"size": 4096`)
}

func TestSizeClassRejectsNonNumericArg(t *testing.T) {
	jsonOut = false
	_, err := captureOutput(t, func() error {
		return runSizeClass(nil, []string{"not-a-number"})
	})
	if err == nil {
		t.Fatal("expected an error for a non-numeric argument")
	}
}
