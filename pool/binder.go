package pool

// Binder writes the content of item index into a pooled view. It is called
// whenever a slot is activated or rebound to a different index.
type Binder[V any] interface {
	Bind(index int, view V)
}

// BinderFunc adapts a function to the Binder interface.
type BinderFunc[V any] func(index int, view V)

// Bind calls f(index, view).
func (f BinderFunc[V]) Bind(index int, view V) {
	f(index, view)
}

// Unbinder is optionally implemented by a Binder that wants to know when a
// slot stops displaying an item.
type Unbinder[V any] interface {
	Unbind(view V)
}

// Factory creates and destroys the views held by pool slots.
type Factory[V any] interface {
	Create() V
	Destroy(view V)
}

// FactoryFuncs adapts a pair of functions to the Factory interface. A nil
// Destroy is allowed.
type FactoryFuncs[V any] struct {
	New     func() V
	Dispose func(view V)
}

func (f FactoryFuncs[V]) Create() V {
	return f.New()
}

func (f FactoryFuncs[V]) Destroy(view V) {
	if f.Dispose != nil {
		f.Dispose(view)
	}
}

// zeroFactory hands out zero values. It is used when the caller only cares
// about index bindings, e.g. in tests or headless layouts.
type zeroFactory[V any] struct{}

func (zeroFactory[V]) Create() V {
	var v V
	return v
}

func (zeroFactory[V]) Destroy(V) {}
