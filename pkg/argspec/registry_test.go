package argspec

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

func TestEnumRegistry_ResolvePreservesOrder(t *testing.T) {
	reg := NewEnumRegistry()
	reg.Register("levels", []string{"node", "cluster"})

	values, err := reg.Resolve("levels")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(values, []string{"node", "cluster"}) {
		t.Errorf("Resolve = %v, want [node cluster]", values)
	}
}

func TestEnumRegistry_ResolveReturnsCopy(t *testing.T) {
	reg := NewEnumRegistry()
	reg.Register("levels", []string{"node", "cluster"})

	values, _ := reg.Resolve("levels")
	values[0] = "mutated"

	again, _ := reg.Resolve("levels")
	if again[0] != "node" {
		t.Error("mutating a resolved slice changed the registry contents")
	}
}

func TestEnumRegistry_RegisterReplaces(t *testing.T) {
	reg := NewEnumRegistry()
	reg.Register("levels", []string{"node"})
	reg.Register("levels", []string{"node", "cluster"})

	values, err := reg.Resolve("levels")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(values) != 2 {
		t.Errorf("Resolve returned %d values, want 2", len(values))
	}
}

func TestEnumRegistry_UnknownName(t *testing.T) {
	reg := NewEnumRegistry()
	reg.Register("distr_type", []string{"bundle", "field"})

	_, err := reg.Resolve("distrtype")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeUnknownEnum) {
		t.Errorf("error code = %s, want %s", prvsnrerrors.CodeOf(err), prvsnrerrors.ErrCodeUnknownEnum)
	}
	if !strings.Contains(err.Error(), `"distrtype"`) {
		t.Errorf("error %q does not name the missing reference", err.Error())
	}
	if !strings.Contains(err.Error(), `did you mean "distr_type"`) {
		t.Errorf("error %q does not suggest the near miss", err.Error())
	}
}

func TestEnumRegistry_UnknownNameWithoutNearMiss(t *testing.T) {
	reg := NewEnumRegistry()
	reg.Register("distr_type", []string{"bundle", "field"})

	_, err := reg.Resolve("completely-different")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error %q suggests a distant candidate", err.Error())
	}
}

func TestEnumRegistry_Names(t *testing.T) {
	reg := NewEnumRegistry()
	reg.Register("b", nil)
	reg.Register("a", nil)

	if got := reg.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names = %v, want [a b]", got)
	}
}

func TestEnumRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewEnumRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Register("levels", []string{"node", "cluster"})
		}()
		go func() {
			defer wg.Done()
			_, _ = reg.Resolve("levels")
		}()
	}
	wg.Wait()
}
