package pipeline

// Factory produces a pipeline for a new channel. A pipeline instance is not
// safely reusable across channels once its handlers hold per-channel state,
// so a factory is expected to build a fresh, independent pipeline on every
// call unless documented otherwise.
type Factory interface {
	New() (*Pipeline, error)
}

// FactoryFunc adapts a function to the [Factory] interface.
type FactoryFunc func() (*Pipeline, error)

func (f FactoryFunc) New() (*Pipeline, error) {
	return f()
}

// FixedFactory returns a factory handing back the same pipeline on every
// call. Each invocation of FixedFactory produces a distinct factory instance,
// so callers comparing factories by identity can observe reconfiguration.
func FixedFactory(pipe *Pipeline) Factory {
	return &fixedFactory{pipe: pipe}
}

type fixedFactory struct {
	pipe *Pipeline
}

func (f *fixedFactory) New() (*Pipeline, error) {
	return f.pipe, nil
}
