package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

func TestSetAdvancedSecurity(t *testing.T) {
	for _, status := range []types.Status{types.StatusEnabled, types.StatusDisabled} {
		t.Run(string(status), func(t *testing.T) {
			var gotMethod, gotPath, gotStatus string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path

				var body struct {
					SecurityAndAnalysis struct {
						AdvancedSecurity struct {
							Status string `json:"status"`
						} `json:"advanced_security"`
					} `json:"security_and_analysis"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				gotStatus = body.SecurityAndAnalysis.AdvancedSecurity.Status

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"name":"repo1"}`))
			}))

			if err := client.SetAdvancedSecurity(context.Background(), "octo-org", "repo1", status); err != nil {
				t.Fatalf("SetAdvancedSecurity() unexpected error: %v", err)
			}
			if gotMethod != http.MethodPatch {
				t.Errorf("method = %s, want PATCH", gotMethod)
			}
			if gotPath != "/repos/octo-org/repo1" {
				t.Errorf("path = %s, want /repos/octo-org/repo1", gotPath)
			}
			if gotStatus != string(status) {
				t.Errorf("advanced_security.status = %q, want %q", gotStatus, status)
			}
		})
	}
}

func TestSetAdvancedSecurityFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Advanced security is always available for public repos"}`))
	}))

	if err := client.SetAdvancedSecurity(context.Background(), "octo-org", "repo1", types.StatusDisabled); err == nil {
		t.Fatal("SetAdvancedSecurity() expected an error")
	}
}
