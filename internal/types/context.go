package types

// Placeholder keys shared between the context builder, the renderer and
// the template catalog. Templates may reference any of these; referencing
// a key the context does not carry fails the whole synthesis.
const (
	KeyProjectName = "projectName"
	KeyModuleName  = "moduleName"
	KeyAuthorName  = "authorName"
	KeyAuthorEmail = "authorEmail"
)

// Context is the variable context for a single scaffolding run: the
// mapping from placeholder name to substituted value plus the task
// profile selected for this project. It is built once per invocation
// and never mutated afterwards; With returns derived copies.
type Context struct {
	Values map[string]string
	Task   TaskProfile
}

func (c Context) ProjectName() string { return c.Values[KeyProjectName] }
func (c Context) ModuleName() string  { return c.Values[KeyModuleName] }

// Lookup returns the value for a placeholder key and whether it is set.
func (c Context) Lookup(key string) (string, bool) {
	value, ok := c.Values[key]
	return value, ok
}

// With returns a copy of the context extended with generator-derived
// placeholders. The receiver is left untouched.
func (c Context) With(extra map[string]string) Context {
	values := make(map[string]string, len(c.Values)+len(extra))
	for key, value := range c.Values {
		values[key] = value
	}
	for key, value := range extra {
		values[key] = value
	}
	return Context{Values: values, Task: c.Task}
}
