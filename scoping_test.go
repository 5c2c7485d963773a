package guice_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/Jsparrow/guice"
	"github.com/Jsparrow/guice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scopingName implements ScopingVisitor by hand to pin down the dispatch of
// every variant.
type scopingNameVisitor struct{}

func (scopingNameVisitor) VisitNoScoping() string { return "unscoped" }

func (scopingNameVisitor) VisitScopeMarker(markerType reflect.Type) string {
	return "marker:" + markerType.String()
}

func (scopingNameVisitor) VisitScope(scope guice.Scope) string { return "scope" }

func (scopingNameVisitor) VisitEagerSingleton() string { return "eager" }

var scopingName = scopingNameVisitor{}

func TestVisitScoping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scoping guice.Scoping
		want    string
	}{
		{"no scoping", guice.NoScoping{}, "unscoped"},
		{"scope marker", guice.ScopeMarker{Type: testutil.RequestScopedType}, "marker:testutil.RequestScoped"},
		{"scope instance", guice.ScopeInstance{Scope: &testutil.CountingScope{}}, "scope"},
		{"eager singleton", guice.EagerSingleton{}, "eager"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, guice.VisitScoping(tt.scoping, scopingName))
			assert.Equal(t, tt.want, guice.VisitScoping(tt.scoping, scopingName))
		})
	}
}

func TestScoping_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unscoped", guice.NoScoping{}.String())
	assert.Equal(t, "testutil.RequestScoped", guice.ScopeMarker{Type: testutil.RequestScopedType}.String())
	assert.Equal(t, "counting scope", guice.ScopeInstance{Scope: &testutil.CountingScope{}}.String())
	assert.Equal(t, "eager singleton", guice.EagerSingleton{}.String())
}

func TestSingletonScope(t *testing.T) {
	t.Run("memoizes the first instance", func(t *testing.T) {
		t.Parallel()

		provider := &testutil.CountingProvider{}
		scoped := guice.SingletonScope.Scope(guice.KeyOf[*testutil.TestService](), provider)

		first, err := scoped.Get()
		require.NoError(t, err)
		second, err := scoped.Get()
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.EqualValues(t, 1, provider.Calls())
	})

	t.Run("memoizes errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		scoped := guice.SingletonScope.Scope(guice.KeyOf[int](), guice.ProviderFunc(func() (any, error) {
			calls++
			return nil, testutil.ErrConstructor
		}))

		_, err := scoped.Get()
		require.Error(t, err)
		_, err = scoped.Get()
		assert.True(t, errors.Is(err, testutil.ErrConstructor))
		assert.Equal(t, 1, calls)
	})

	t.Run("safe under concurrent reads", func(t *testing.T) {
		t.Parallel()

		provider := &testutil.CountingProvider{}
		scoped := guice.SingletonScope.Scope(guice.KeyOf[*testutil.TestService](), provider)

		var wg sync.WaitGroup
		results := make([]any, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := scoped.Get()
				assert.NoError(t, err)
				results[i] = v
			}(i)
		}
		wg.Wait()

		assert.EqualValues(t, 1, provider.Calls())
		for _, v := range results {
			assert.Same(t, results[0], v)
		}
	})
}
