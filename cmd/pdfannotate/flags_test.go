package main

import (
	"errors"
	"slices"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseAnnotateFlags - annotate/replay flag parsing
// ---------------------------------------------------------------------------

func TestParseAnnotateFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		wantOutput     string
		wantScale      float64
		wantScaleSet   bool
		wantQuiet      bool
		wantVerbose    bool
		wantConfig     string
		wantPositional []string
		wantErr        error
	}{
		{
			name:           "no args",
			args:           []string{},
			wantPositional: []string{},
		},
		{
			name:           "all flags",
			args:           []string{"-o", "out", "--scale", "2", "-c", "work", "-q", "-v", "doc.pdf"},
			wantOutput:     "out",
			wantScale:      2,
			wantScaleSet:   true,
			wantQuiet:      true,
			wantVerbose:    true,
			wantConfig:     "work",
			wantPositional: []string{"doc.pdf"},
		},
		{
			name:           "flags after positional",
			args:           []string{"script.yaml", "doc.pdf", "--output=dir"},
			wantOutput:     "dir",
			wantPositional: []string{"script.yaml", "doc.pdf"},
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			wantErr: ErrUsage,
		},
		{
			name:    "help",
			args:    []string{"-h"},
			wantErr: flag.ErrHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(t, nil)
			f, pos, err := parseAnnotateFlags("annotate", tt.args, env)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.session.output != tt.wantOutput || f.session.scale != tt.wantScale || f.session.scaleSet != tt.wantScaleSet {
				t.Errorf("session = %+v", f.session)
			}
			if f.common.quiet != tt.wantQuiet || f.common.verbose != tt.wantVerbose || f.common.config != tt.wantConfig {
				t.Errorf("common = %+v", f.common)
			}
			if !slices.Equal(pos, tt.wantPositional) {
				t.Errorf("positional = %v, want %v", pos, tt.wantPositional)
			}
		})
	}
}

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(t, nil)
	f, pos, err := parseRenderFlags([]string{"doc.pdf", "-p", "3", "-o", "page.png"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.page != 3 || f.session.output != "page.png" || f.session.scaleSet {
		t.Errorf("flags = %+v", f)
	}
	if !slices.Equal(pos, []string{"doc.pdf"}) {
		t.Errorf("positional = %v", pos)
	}

	f, _, err = parseRenderFlags(nil, env)
	if err != nil || f.page != 1 {
		t.Errorf("default page = %d (err %v), want 1", f.page, err)
	}
}
