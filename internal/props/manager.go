package props

// Target is anything backed by a Bag.
type Target interface {
	Fields() *Bag
}

// Options configures Manager.Define. Fields are hidden unless Enumerable
// is set.
type Options struct {
	Value      any
	Writable   bool
	Enumerable bool
}

// Manager attaches bookkeeping fields to instances on behalf of one model.
type Manager struct {
	model any
}

// NewManager returns a Manager whose DefineModel links targets to model.
func NewManager(model any) *Manager {
	return &Manager{model: model}
}

// Define installs name on target.
func (m *Manager) Define(target Target, name string, opts Options) {
	target.Fields().Define(name, Field{
		Value:      opts.Value,
		Writable:   opts.Writable,
		Enumerable: opts.Enumerable,
	})
}

// DefineDescriptor links target to its descriptor.
func (m *Manager) DefineDescriptor(target Target, descriptor any) {
	m.Define(target, KeyDescriptor, Options{Value: descriptor})
}

// DefineModel links target back to the owning model.
func (m *Manager) DefineModel(target Target) {
	m.Define(target, KeyModel, Options{Value: m.model})
}

// Model returns the model this manager links targets to.
func (m *Manager) Model() any { return m.model }
