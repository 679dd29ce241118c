// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"resume", "resmue", 2},
		{"check", "chek", 1},
	}

	for _, test := range tests {
		got := levenshtein(test.a, test.b)
		if got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
		if reverse := levenshtein(test.b, test.a); reverse != got {
			t.Errorf("levenshtein not symmetric for %q, %q: %d vs %d", test.a, test.b, got, reverse)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "sum"}, {Name: "check"}, {Name: "resume"}, {Name: "bench"}}

	tests := []struct {
		input string
		want  string
	}{
		{"chekc", "check"},
		{"sun", "sum"},
		{"bnech", "bench"},
		{"completely-unrelated", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("algorithm", "", "")
	flagSet.BoolP("quiet", "q", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--algoritm", "sha1"}, "--algorithm"},
		{[]string{"-q", "--quite"}, "--quiet"},
		{[]string{"--algorithm=sha1", "--qiuet"}, "--quiet"},
		{[]string{"--zzzzzzzz"}, ""},
		{[]string{"file.txt"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
