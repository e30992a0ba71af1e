package processors

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/report"
	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

func TestMain(m *testing.M) {
	pterm.DisableOutput()
	os.Exit(m.Run())
}

type updateCall struct {
	Org    string
	Repo   string
	Status types.Status
}

type fakeUpdater struct {
	calls    []updateCall
	failures map[string]error
}

func (f *fakeUpdater) SetAdvancedSecurity(ctx context.Context, org, repo string, status types.Status) error {
	f.calls = append(f.calls, updateCall{Org: org, Repo: repo, Status: status})
	return f.failures[repo]
}

func allowSet(names ...string) types.AllowSet {
	allow := make(types.AllowSet)
	for _, name := range names {
		allow.Add(name)
	}
	return allow
}

func run(repos []string, allow types.AllowSet, force bool, updater *fakeUpdater) []types.ComplianceResult {
	processor := &ComplianceProcessor{Org: "octo-org", AllowSet: allow, ForceEnable: force, Updater: updater}
	return NewSequentialProcessor(repos, processor, 0).Process(context.Background())
}

func TestComplianceScenarios(t *testing.T) {
	repos := []string{"repo1", "repo2", "repo3"}

	tests := []struct {
		name            string
		force           bool
		expectedCalls   []updateCall
		expectedChanged []string
	}{
		{
			name:  "Allowed repositories are skipped without force",
			force: false,
			expectedCalls: []updateCall{
				{Org: "octo-org", Repo: "repo3", Status: types.StatusDisabled},
			},
			expectedChanged: []string{"repo3"},
		},
		{
			name:  "Force enable patches every repository",
			force: true,
			expectedCalls: []updateCall{
				{Org: "octo-org", Repo: "repo1", Status: types.StatusEnabled},
				{Org: "octo-org", Repo: "repo2", Status: types.StatusEnabled},
				{Org: "octo-org", Repo: "repo3", Status: types.StatusDisabled},
			},
			expectedChanged: []string{"repo1", "repo2", "repo3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updater := &fakeUpdater{}
			results := run(repos, allowSet("repo1", "repo2"), tt.force, updater)

			if !reflect.DeepEqual(updater.calls, tt.expectedCalls) {
				t.Errorf("update calls = %+v, want %+v", updater.calls, tt.expectedCalls)
			}
			if changed := report.Changed(results); !reflect.DeepEqual(changed, tt.expectedChanged) {
				t.Errorf("changed = %v, want %v", changed, tt.expectedChanged)
			}
		})
	}
}

func TestSkipInvariant(t *testing.T) {
	allow := allowSet("repo1", "repo2", "repo3")
	updater := &fakeUpdater{}

	results := run([]string{"repo1", "repo2", "repo3"}, allow, false, updater)

	if len(updater.calls) != 0 {
		t.Errorf("expected no update requests, got %+v", updater.calls)
	}
	for _, result := range results {
		if !result.Skipped || result.Desired != types.StatusEnabled {
			t.Errorf("result %+v should be a skipped enable", result)
		}
	}
}

func TestNotAllowedIsAlwaysDisabled(t *testing.T) {
	for _, force := range []bool{false, true} {
		updater := &fakeUpdater{}
		run([]string{"other1", "other2"}, allowSet("repo1"), force, updater)

		if len(updater.calls) != 2 {
			t.Fatalf("force=%t: got %d calls, want 2", force, len(updater.calls))
		}
		for _, call := range updater.calls {
			if call.Status != types.StatusDisabled {
				t.Errorf("force=%t: %s set to %s, want disabled", force, call.Repo, call.Status)
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	repos := []string{"repo1", "repo2", "repo3"}
	allow := allowSet("repo1", "repo2")

	t.Run("Force enable returns the same list twice", func(t *testing.T) {
		updater := &fakeUpdater{}
		first := report.Changed(run(repos, allow, true, updater))
		second := report.Changed(run(repos, allow, true, updater))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("first = %v, second = %v", first, second)
		}
	})

	t.Run("Without force no enable is ever issued", func(t *testing.T) {
		updater := &fakeUpdater{}
		run(repos, allow, false, updater)
		run(repos, allow, false, updater)
		for _, call := range updater.calls {
			if call.Status == types.StatusEnabled {
				t.Errorf("unexpected enable of %s", call.Repo)
			}
		}
	})

	t.Run("Without force and all repositories allowed the second run changes nothing", func(t *testing.T) {
		updater := &fakeUpdater{}
		all := allowSet(repos...)
		run(repos, all, false, updater)
		if second := report.Changed(run(repos, all, false, updater)); len(second) != 0 {
			t.Errorf("second run changed %v, want none", second)
		}
	})
}

func TestPartialFailureIsolation(t *testing.T) {
	boom := errors.New("boom")
	updater := &fakeUpdater{failures: map[string]error{"B": boom}}

	processor := &ComplianceProcessor{Org: "octo-org", AllowSet: allowSet(), ForceEnable: true, Updater: updater}
	sp := NewSequentialProcessor([]string{"A", "B", "C"}, processor, 0)
	results := sp.Process(context.Background())

	if len(updater.calls) != 3 {
		t.Fatalf("expected A, B and C to be attempted, got %+v", updater.calls)
	}
	if changed := report.Changed(results); !reflect.DeepEqual(changed, []string{"A", "C"}) {
		t.Errorf("changed = %v, want [A C]", changed)
	}

	var partialErr *types.UpdatePartialError
	if !errors.As(results[1].Error, &partialErr) {
		t.Fatalf("B error = %v, want *types.UpdatePartialError", results[1].Error)
	}
	if partialErr.Repository != "B" || !errors.Is(results[1].Error, boom) {
		t.Errorf("unexpected partial error: %v", partialErr)
	}

	success, skipped, failed := sp.Counts()
	if success != 2 || skipped != 0 || failed != 1 {
		t.Errorf("Counts() = (%d, %d, %d), want (2, 0, 1)", success, skipped, failed)
	}
}

func TestProcessStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	updater := &fakeUpdater{}
	processor := &ComplianceProcessor{Org: "octo-org", AllowSet: allowSet(), Updater: updater}
	results := NewSequentialProcessor([]string{"A", "B"}, processor, 0).Process(ctx)

	if len(results) != 0 || len(updater.calls) != 0 {
		t.Errorf("expected nothing processed, got results %+v calls %+v", results, updater.calls)
	}
}

func TestProcessDelayStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updater := &fakeUpdater{}
	processor := &ComplianceProcessor{Org: "octo-org", AllowSet: allowSet(), Updater: updater}

	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := NewSequentialProcessor([]string{"A", "B"}, processor, 3).Process(ctx)
	elapsed := time.Since(start)

	if elapsed >= 2*time.Second {
		t.Errorf("Process() waited %s after cancellation", elapsed)
	}
	expected := []updateCall{{Org: "octo-org", Repo: "A", Status: types.StatusDisabled}}
	if !reflect.DeepEqual(updater.calls, expected) {
		t.Errorf("updates = %+v, want %+v", updater.calls, expected)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %+v", results)
	}
}

func TestPlan(t *testing.T) {
	results := Plan([]string{"repo1", "repo2", "repo3"}, allowSet("repo1", "repo2"), false)

	expected := []types.ComplianceResult{
		{Repository: "repo1", Desired: types.StatusEnabled, Skipped: true},
		{Repository: "repo2", Desired: types.StatusEnabled, Skipped: true},
		{Repository: "repo3", Desired: types.StatusDisabled},
	}
	if !reflect.DeepEqual(results, expected) {
		t.Errorf("Plan() = %+v, want %+v", results, expected)
	}
}
