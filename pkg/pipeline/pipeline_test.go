package pipeline

import (
	"testing"
	"time"

	"github.com/matzehuels/chartdoc/pkg/transform"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if len(opts.Targets) != len(transform.Targets()) {
		t.Errorf("Targets = %v, want all targets", opts.Targets)
	}
	if opts.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", opts.CacheTTL, DefaultCacheTTL)
	}
}

func TestOptionsIdempotent(t *testing.T) {
	opts := Options{Targets: []string{transform.TargetRowOriented}, CacheTTL: time.Minute}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(opts.Targets) != 1 || opts.Targets[0] != transform.TargetRowOriented {
		t.Errorf("Targets = %v, want [%s]", opts.Targets, transform.TargetRowOriented)
	}
	if opts.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", opts.CacheTTL)
	}
}

func TestOptionsUnknownTarget(t *testing.T) {
	opts := Options{Targets: []string{"pivot-table"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestDefaultTargetsCopy(t *testing.T) {
	a := DefaultTargets()
	a[0] = "mutated"
	b := DefaultTargets()
	if b[0] == "mutated" {
		t.Error("DefaultTargets() shares backing storage between calls")
	}
}
