package lineage

import (
	"github.com/clonalstack/clonaltrace/genotype"
)

// Forest is the inferred background forest: one parent pointer per non-root
// genotype, every chain terminating at genotype-0. Immutable once built.
type Forest struct {
	order   []string
	parents map[string]string
}

// NewForest builds a forest from explicit parent assignments in the given
// genotype order and validates it. Genotypes absent from parents default to
// the root.
func NewForest(order []string, parents map[string]string) (*Forest, error) {
	f := &Forest{
		order:   append([]string(nil), order...),
		parents: map[string]string{},
	}
	for _, id := range f.order {
		parent, ok := parents[id]
		if !ok || parent == id {
			parent = genotype.Root
		}
		f.parents[id] = parent
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// IDs returns the non-root genotypes in their table order.
func (f *Forest) IDs() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)

	return out
}

// Parent returns the background of id, or ErrUnknownGenotype.
func (f *Forest) Parent(id string) (string, error) {
	parent, ok := f.parents[id]
	if !ok {
		return "", ErrUnknownGenotype
	}

	return parent, nil
}

// Ancestors returns the chain from id's parent up to and including the root.
func (f *Forest) Ancestors(id string) ([]string, error) {
	if _, ok := f.parents[id]; !ok {
		return nil, ErrUnknownGenotype
	}
	var chain []string
	for cur := f.parents[id]; ; cur = f.parents[cur] {
		chain = append(chain, cur)
		if cur == genotype.Root {
			return chain, nil
		}
	}
}

// Children builds the parent → children index, in genotype table order.
func (f *Forest) Children() map[string][]string {
	children := map[string][]string{}
	for _, id := range f.order {
		parent := f.parents[id]
		children[parent] = append(children[parent], id)
	}

	return children
}

// Validate checks the forest invariant: following parent pointers from any
// genotype reaches genotype-0 within len(genotypes) steps.
func (f *Forest) Validate() error {
	limit := len(f.order) + 1
	for _, id := range f.order {
		cur := id
		for step := 0; ; step++ {
			if step > limit {
				return ErrCyclicLineage
			}
			next, ok := f.parents[cur]
			if !ok {
				return ErrCyclicLineage
			}
			if next == genotype.Root {
				break
			}
			cur = next
		}
	}

	return nil
}
