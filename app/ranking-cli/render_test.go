//go:build !integration

package main

import (
	"bytes"
	"foodRanking/domain"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRender(t *testing.T) {
	id := uuid.MustParse("af1c2a7e-2d0b-4c55-9a43-0b7f1de0c001")
	top := []domain.TopVendor{{
		Position:     1,
		VendorID:     id,
		BusinessName: "Warung Sate",
		Score:        36.2,
		Plan:         domain.PlanPro,
	}}

	tests := []struct {
		format string
		want   []string
	}{
		{format: "json", want: []string{`"business_name": "Warung Sate"`, `"id": "` + id.String() + `"`, `"ranking_score": 36.2`}},
		{format: "yaml", want: []string{"business_name: Warung Sate", "id: " + id.String(), "ranking_score: 36.2", "plan: PRO"}},
		{format: "YML", want: []string{"position: 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := render(&buf, tt.format, top); err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "xml", domain.RankingPosition{}); err == nil {
		t.Fatal("expected error for xml format")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

func TestRootCmd_RejectsBadInputBeforeConnecting(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad vendor id", args: []string{"position", "vendor-7"}, want: "invalid vendor id"},
		{name: "bad recompute vendor", args: []string{"recompute", "--vendor", "x"}, want: "invalid vendor id"},
		{name: "bad format", args: []string{"stats", "--format", "xml"}, want: "unsupported format"},
		{name: "missing arg", args: []string{"insights"}, want: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.Execute()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}
