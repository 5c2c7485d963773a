package guice_test

import (
	"fmt"
	"testing"

	"github.com/Jsparrow/guice"
	"github.com/Jsparrow/guice/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// targetName implements TargetVisitor by hand to pin down the dispatch of
// every variant.
type targetName struct{}

func (targetName) VisitUntargeted() string { return "untargeted" }

func (targetName) VisitInstance(instance any) string {
	return fmt.Sprintf("instance:%v", instance)
}

func (targetName) VisitLinkedKey(key guice.Key) string { return "linked:" + key.String() }

func (targetName) VisitProvider(guice.Provider) string { return "provider" }

func (targetName) VisitProviderKey(key guice.Key) string {
	return "providerKey:" + key.String()
}

func TestVisitTarget(t *testing.T) {
	t.Parallel()

	provider := &testutil.CountingProvider{}
	tests := []struct {
		name   string
		target guice.Target
		want   string
	}{
		{"untargeted", guice.UntargetedTarget{}, "untargeted"},
		{"instance", guice.InstanceTarget{Instance: 42}, "instance:42"},
		{"linked key", guice.LinkedKeyTarget{Key: guice.KeyOf[int]()}, "linked:int"},
		{"provider", guice.ProviderInstanceTarget{Provider: provider}, "provider"},
		{"provider key", guice.ProviderKeyTarget{Key: guice.KeyOf[guice.Provider]()}, "providerKey:guice.Provider"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, guice.VisitTarget(tt.target, targetName{}))
			// Visiting is a pure read; a second pass returns the same result.
			assert.Equal(t, tt.want, guice.VisitTarget(tt.target, targetName{}))
		})
	}
}

func TestDefaultTargetVisitor(t *testing.T) {
	t.Run("specific hooks win over Other", func(t *testing.T) {
		t.Parallel()

		v := guice.DefaultTargetVisitor[string]{
			Instance: func(any) string { return "instance" },
			Other:    func() string { return "other" },
		}

		assert.Equal(t, "instance", guice.VisitTarget(guice.InstanceTarget{Instance: 1}, v))
		assert.Equal(t, "other", guice.VisitTarget(guice.UntargetedTarget{}, v))
		assert.Equal(t, "other", guice.VisitTarget(guice.LinkedKeyTarget{Key: guice.KeyOf[int]()}, v))
		assert.Equal(t, "other", guice.VisitTarget(guice.ProviderKeyTarget{Key: guice.KeyOf[int]()}, v))
		assert.Equal(t, "other", guice.VisitTarget(guice.ProviderInstanceTarget{Provider: &testutil.CountingProvider{}}, v))
	})

	t.Run("zero value without hooks", func(t *testing.T) {
		t.Parallel()

		var v guice.DefaultTargetVisitor[int]
		assert.Zero(t, guice.VisitTarget(guice.UntargetedTarget{}, v))
	})
}

func TestTarget_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "untargeted", guice.UntargetedTarget{}.String())
	assert.Equal(t, "instance 42", guice.InstanceTarget{Instance: 42}.String())
	assert.Equal(t, "int", guice.LinkedKeyTarget{Key: guice.KeyOf[int]()}.String())
	assert.Equal(t, "provider guice.Provider", guice.ProviderKeyTarget{Key: guice.KeyOf[guice.Provider]()}.String())
}
