package platform

import (
	"strings"
	"testing"
)

func TestValidateArticleURL(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr string
	}{
		{name: "valid https", raw: " https://example.com/a ", want: "https://example.com/a"},
		{name: "valid http", raw: "http://example.com", want: "http://example.com"},
		{name: "empty authored article", raw: "", wantErr: "article has no URL"},
		{name: "unsupported scheme", raw: "ftp://example.com", wantErr: "unsupported URL scheme"},
		{name: "missing host", raw: "https://", wantErr: "invalid URL host"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateArticleURL(tc.raw)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
