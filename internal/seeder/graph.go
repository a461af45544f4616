package seeder

import "fmt"

// Step builds one or more tables of a Dataset from tables built by its
// dependencies. Run returns the number of rows it produced.
type Step struct {
	Name         string
	Dependencies []string
	Run          func(d *Dataset) int
}

type DependencyGraph struct {
	steps      map[string]*Step
	registered []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		steps: make(map[string]*Step),
	}
}

func (g *DependencyGraph) AddStep(step *Step) {
	if _, exists := g.steps[step.Name]; !exists {
		g.registered = append(g.registered, step.Name)
	}
	g.steps[step.Name] = step
}

// BuildOrder returns a topological order of the registered steps. Ties are
// broken by registration order so the result, and therefore the order in
// which random draws are consumed, is stable across runs.
func (g *DependencyGraph) BuildOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving step: %s", name)
		}
		if visited[name] {
			return nil
		}

		step, ok := g.steps[name]
		if !ok {
			return fmt.Errorf("unknown step: %s", name)
		}

		temp[name] = true
		for _, dep := range step.Dependencies {
			if dep == name {
				continue
			}
			if _, ok := g.steps[dep]; !ok {
				return fmt.Errorf("step %s depends on unknown step %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range g.registered {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func (g *DependencyGraph) Step(name string) *Step {
	return g.steps[name]
}
