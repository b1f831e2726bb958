package enemy

import "fmt"

// Registry maps enemy names to enemies, remembering registration order.
// It is filled once at startup and only read afterwards.
type Registry struct {
	names  []string
	byName map[string]Enemy
}

func NewRegistry(enemies ...Enemy) (*Registry, error) {
	r := &Registry{byName: make(map[string]Enemy, len(enemies))}
	for _, e := range enemies {
		if err := r.Register(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds e under e.Name(). Names must be unique.
func (r *Registry) Register(e Enemy) error {
	name := e.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("%w: duplicate enemy %q", ErrInvalidConfig, name)
	}
	r.byName[name] = e
	r.names = append(r.names, name)
	return nil
}

func (r *Registry) Get(name string) (Enemy, error) {
	e, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, name)
	}
	return e, nil
}

func (r *Registry) Names() []string { return append([]string(nil), r.names...) }
