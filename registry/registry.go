// Package registry holds the bot's command catalog: categories, commands,
// command groups and the checks guarding them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bottleneckco/discord-help/models"
)

// Lookup and registration errors. Match them with errors.Is.
var (
	ErrCommandNotFound   = errors.New("command not found")
	ErrNoSubcommands     = errors.New("command has no subcommands")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCommand  = errors.New("duplicate command")
	ErrDuplicateCategory = errors.New("duplicate category")
)

// ResolveError tells where Resolve stopped walking a path
type ResolveError struct {
	// Parent is the deepest command found, nil when the first name is unknown
	Parent *models.Command
	// Name is the path element that could not be resolved
	Name string
	// Depth is the number of path elements consumed by Parent
	Depth int
	Err   error
}

func (e *ResolveError) Error() string {
	if e.Parent == nil {
		return fmt.Sprintf("%v: %s", e.Err, e.Name)
	}
	return fmt.Sprintf("%v: %s %s", e.Err, e.Parent.QualifiedName(), e.Name)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// NoCategoryName and NoCategoryDescription label the bucket of commands
// registered without a category
const (
	NoCategoryName        = "No Category"
	NoCategoryDescription = "Commands with no category"
)

// Registry is an in-memory command catalog. It is filled at startup and read
// concurrently by event handlers.
type Registry struct {
	mu         sync.RWMutex
	categories []*models.Category
	commands   []*models.Command
	index      map[string]*models.Command
	checks     []models.Check
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{
		index: make(map[string]*models.Command),
	}
}

// AddCategory registers a category. Names are unique.
func (r *Registry) AddCategory(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.Name == "" || category.Name == NoCategoryName {
		return fmt.Errorf("invalid category name %q", category.Name)
	}
	if r.category(category.Name) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, category.Name)
	}
	r.categories = append(r.categories, category)
	return nil
}

// AddCommand registers a top-level command (and its subcommands). Its
// category, if set, must already be registered.
func (r *Registry) AddCommand(cmd *models.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Name == "" {
		return errors.New("command without a name")
	}
	if cmd.Category != "" && r.category(cmd.Category) == nil {
		return fmt.Errorf("%w: %s (command %s)", ErrCategoryNotFound, cmd.Category, cmd.Name)
	}
	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, name := range names {
		if _, taken := r.index[name]; taken {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
		}
	}
	if err := validateChildren(cmd); err != nil {
		return err
	}
	for _, name := range names {
		r.index[name] = cmd
	}
	r.commands = append(r.commands, cmd)
	return nil
}

func validateChildren(group *models.Command) error {
	seen := make(map[string]bool)
	for _, sub := range group.Children {
		for _, name := range append([]string{sub.Name}, sub.Aliases...) {
			if seen[name] {
				return fmt.Errorf("%w: %s %s", ErrDuplicateCommand, group.QualifiedName(), name)
			}
			seen[name] = true
		}
		if err := validateChildren(sub); err != nil {
			return err
		}
	}
	return nil
}

// AddCheck registers a check applied to every command
func (r *Registry) AddCheck(check models.Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, check)
}

func (r *Registry) category(name string) *models.Category {
	for _, c := range r.categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Categories returns registered categories in registration order
func (r *Registry) Categories() []*models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*models.Category(nil), r.categories...)
}

// Category looks up a category by name
func (r *Registry) Category(name string) (*models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := r.category(name)
	return c, c != nil
}

// Commands returns the top-level commands of a category. An empty name returns
// the commands without a category.
func (r *Registry) Commands(category string) []*models.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Command
	for _, cmd := range r.commands {
		if cmd.Category == category {
			out = append(out, cmd)
		}
	}
	return out
}

// AllCommands returns every top-level command in registration order
func (r *Registry) AllCommands() []*models.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*models.Command(nil), r.commands...)
}

// Command looks up a top-level command by name or alias
func (r *Registry) Command(name string) (*models.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.index[name]
	return cmd, ok
}

// Resolve walks a path such as ["config", "show"] down the command groups.
// The first element must be a top-level command. Failures are returned as a
// *ResolveError wrapping ErrCommandNotFound or ErrNoSubcommands.
func (r *Registry) Resolve(path []string) (*models.Command, error) {
	if len(path) == 0 {
		return nil, &ResolveError{Err: ErrCommandNotFound}
	}
	cmd, ok := r.Command(path[0])
	if !ok {
		return nil, &ResolveError{Name: path[0], Err: ErrCommandNotFound}
	}
	for i, name := range path[1:] {
		if !cmd.IsGroup() {
			return nil, &ResolveError{Parent: cmd, Name: name, Depth: i + 1, Err: ErrNoSubcommands}
		}
		sub, ok := cmd.Child(name)
		if !ok {
			return nil, &ResolveError{Parent: cmd, Name: name, Depth: i + 1, Err: ErrCommandNotFound}
		}
		cmd = sub
	}
	return cmd, nil
}

// Mapping returns every category with its commands, in registration order,
// followed by the commands without a category when there are any
func (r *Registry) Mapping() []models.CategoryCommands {
	categories := r.Categories()
	mapping := make([]models.CategoryCommands, 0, len(categories)+1)
	for _, category := range categories {
		mapping = append(mapping, models.CategoryCommands{
			Category: category,
			Commands: r.Commands(category.Name),
		})
	}
	if loose := r.Commands(""); len(loose) > 0 {
		mapping = append(mapping, models.CategoryCommands{Commands: loose})
	}
	return mapping
}

// CheckPermission runs the global checks and then the command's own checks.
// The first negative answer wins; an error from any check makes the result
// Indeterminate.
func (r *Registry) CheckPermission(ctx context.Context, inv models.Invoker, cmd *models.Command) Permission {
	r.mu.RLock()
	checks := append(append([]models.Check(nil), r.checks...), cmd.Checks...)
	r.mu.RUnlock()

	for _, check := range checks {
		ok, err := check(ctx, inv)
		if err != nil {
			return Indeterminate
		}
		if !ok {
			return Denied
		}
	}
	return Allowed
}
