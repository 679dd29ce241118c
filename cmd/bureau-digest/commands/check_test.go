// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/digest/lib/testutil"
)

// checkFixture writes two files and a checksum list covering them.
type checkFixture struct {
	dog, cog string
	list     string
}

func newCheckFixture(t *testing.T, extraLines ...string) checkFixture {
	t.Helper()
	fixture := checkFixture{
		dog: testutil.WriteFile(t, "dog.txt", []byte(dogText)),
		cog: testutil.WriteFile(t, "cog.txt", []byte(cogText)),
	}
	lines := []string{
		dogSHA1 + "  " + fixture.dog,
		"SHA1 (" + fixture.cog + ") = " + cogSHA1,
	}
	lines = append(lines, extraLines...)
	fixture.list = testutil.WriteFile(t, "SHA1SUMS", []byte(strings.Join(lines, "\n")+"\n"))
	return fixture
}

func runCheckForTest(t *testing.T, params *checkParams, lists ...string) (outputs, int) {
	t.Helper()
	var out outputs
	err := runCheck(context.Background(), params, lists, strings.NewReader(""), &out.stdout, &out.stderr, discardLogger())
	return out, exitCode(t, err)
}

func TestCheckAllOK(t *testing.T) {
	isolateConfig(t)
	fixture := newCheckFixture(t)

	out, code := runCheckForTest(t, &checkParams{}, fixture.list)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr:\n%s", code, out.stderr.String())
	}
	want := fixture.dog + ": OK\n" + fixture.cog + ": OK\n"
	if got := out.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCheckDetectsModification(t *testing.T) {
	isolateConfig(t)
	fixture := newCheckFixture(t)
	if err := os.WriteFile(fixture.cog, []byte(cogText+"!"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, code := runCheckForTest(t, &checkParams{}, fixture.list)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.stdout.String(), fixture.cog+": FAILED\n") {
		t.Errorf("stdout = %q, want FAILED for %s", out.stdout.String(), fixture.cog)
	}
	if !strings.Contains(out.stderr.String(), "1 computed checksum did NOT match") {
		t.Errorf("stderr = %q, want mismatch warning", out.stderr.String())
	}
}

func TestCheckQuietAndStatus(t *testing.T) {
	isolateConfig(t)
	fixture := newCheckFixture(t)

	out, code := runCheckForTest(t, &checkParams{Quiet: true}, fixture.list)
	if code != 0 || out.stdout.Len() != 0 {
		t.Errorf("--quiet: code %d, stdout %q; want 0 and no output", code, out.stdout.String())
	}

	os.Remove(fixture.dog)
	out, code = runCheckForTest(t, &checkParams{Status: true}, fixture.list)
	if code != 1 {
		t.Errorf("--status with a missing file: exit code = %d, want 1", code)
	}
	if out.stdout.Len() != 0 || out.stderr.Len() != 0 {
		t.Errorf("--status printed output: stdout %q, stderr %q", out.stdout.String(), out.stderr.String())
	}
}

func TestCheckMissingFiles(t *testing.T) {
	isolateConfig(t)
	missing := filepath.Join(t.TempDir(), "gone.txt")
	fixture := newCheckFixture(t, dogSHA1+"  "+missing)

	out, code := runCheckForTest(t, &checkParams{}, fixture.list)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.stdout.String(), missing+": FAILED open or read") {
		t.Errorf("stdout = %q, want open failure for %s", out.stdout.String(), missing)
	}

	out, code = runCheckForTest(t, &checkParams{IgnoreMissing: true}, fixture.list)
	if code != 0 {
		t.Errorf("--ignore-missing: exit code = %d, want 0; stderr:\n%s", code, out.stderr.String())
	}
	if strings.Contains(out.stdout.String(), missing) {
		t.Errorf("--ignore-missing still reported %s", missing)
	}
}

func TestCheckIgnoreMissingNothingVerified(t *testing.T) {
	isolateConfig(t)
	missing := filepath.Join(t.TempDir(), "gone.txt")
	list := testutil.WriteFile(t, "SUMS", []byte(dogSHA1+"  "+missing+"\n"))

	out, code := runCheckForTest(t, &checkParams{IgnoreMissing: true}, list)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.stderr.String(), "no file was verified") {
		t.Errorf("stderr = %q, want 'no file was verified'", out.stderr.String())
	}
}

func TestCheckMalformedLines(t *testing.T) {
	isolateConfig(t)
	fixture := newCheckFixture(t, "this is not a checksum line")

	out, code := runCheckForTest(t, &checkParams{}, fixture.list)
	if code != 0 {
		t.Errorf("lenient exit code = %d, want 0", code)
	}
	if !strings.Contains(out.stderr.String(), "1 line is improperly formatted") {
		t.Errorf("stderr = %q, want malformed-line warning", out.stderr.String())
	}

	_, code = runCheckForTest(t, &checkParams{Strict: true}, fixture.list)
	if code != 1 {
		t.Errorf("--strict exit code = %d, want 1", code)
	}
}

func TestCheckEmptyList(t *testing.T) {
	isolateConfig(t)
	list := testutil.WriteFile(t, "EMPTY", []byte("# nothing here\n"))

	out, code := runCheckForTest(t, &checkParams{}, list)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.stderr.String(), "no properly formatted checksum lines") {
		t.Errorf("stderr = %q", out.stderr.String())
	}
}

func TestCheckFromStdin(t *testing.T) {
	isolateConfig(t)
	dog := testutil.WriteFile(t, "dog.txt", []byte(dogText))

	var out outputs
	stdin := strings.NewReader(dogSHA1 + "  " + dog + "\n")
	err := runCheck(context.Background(), &checkParams{}, nil, stdin, &out.stdout, &out.stderr, discardLogger())
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got := out.stdout.String(); got != dog+": OK\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestCheckJSON(t *testing.T) {
	isolateConfig(t)
	fixture := newCheckFixture(t)
	if err := os.WriteFile(fixture.dog, []byte("changed"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	params := &checkParams{}
	params.OutputJSON = true
	out, code := runCheckForTest(t, params, fixture.list)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	var results []checkResult
	if err := json.Unmarshal(out.stdout.Bytes(), &results); err != nil {
		t.Fatalf("decoding JSON: %v\n%s", err, out.stdout.String())
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Status != statusFailed || results[0].Expected != dogSHA1 || results[0].Line != 1 {
		t.Errorf("results[0] = %+v, want failed dog entry on line 1", results[0])
	}
	if results[1].Status != statusOK || results[1].Algorithm != "sha1" {
		t.Errorf("results[1] = %+v, want ok sha1 entry", results[1])
	}
}

func TestCheckRoundTripWithSum(t *testing.T) {
	isolateConfig(t)
	var paths []string
	for i := range 5 {
		paths = append(paths, testutil.WriteFile(t, "file.bin", testutil.Bytes(10_000+i, uint64(i))))
	}

	for _, name := range []string{"sha1", "sha256", "blake2b-256", "blake3"} {
		t.Run(name, func(t *testing.T) {
			var sum outputs
			if err := runSum(context.Background(), &sumParams{Algorithm: name, Tag: true}, paths,
				&sum.stdout, &sum.stderr, discardLogger()); err != nil {
				t.Fatalf("runSum: %v", err)
			}
			list := testutil.WriteFile(t, "SUMS", sum.stdout.Bytes())

			out, code := runCheckForTest(t, &checkParams{Quiet: true}, list)
			if code != 0 {
				t.Errorf("exit code = %d; stdout:\n%s\nstderr:\n%s", code, out.stdout.String(), out.stderr.String())
			}
		})
	}
}
