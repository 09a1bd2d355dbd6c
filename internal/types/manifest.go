package types

// Dependency is one entry in the generated package manifest. Constraint
// is a PEP 440 specifier set; Source optionally names a package
// registry declared on the manifest (the CUDA torch wheel index);
// Extras lists the package extras to install.
type Dependency struct {
	Name       string
	Constraint string
	Source     string
	Extras     []string
}

type DependencySet []Dependency

// Names returns the dependency names in declaration order.
func (s DependencySet) Names() []string {
	names := make([]string, 0, len(s))
	for _, dep := range s {
		names = append(names, dep.Name)
	}
	return names
}

// DependencyGroup is a named dependency group of the manifest,
// installable independently of the core set. Optional groups are not
// installed by a default install.
type DependencyGroup struct {
	Name     string
	Optional bool
	Deps     DependencySet
}

// Registry is a named package index the manifest may pin dependencies to.
type Registry struct {
	Name     string
	URL      string
	Priority string
}

// SystemPackage is an apt package pinned in the generated container
// config. Version must be a valid Debian version string.
type SystemPackage struct {
	Name    string
	Version string
}

// Manifest is the generated dependency manifest: project metadata, the
// always-installed core set, the named optional groups, and the pinned
// system packages the container config installs. The core set alone
// must be sufficient for the default pipeline stages.
type Manifest struct {
	ProjectName      string
	ModuleName       string
	Version          string
	Description      string
	Authors          []string
	PythonConstraint string
	Registries       []Registry
	Core             DependencySet
	Groups           []DependencyGroup
	System           []SystemPackage
}

// Group returns the named optional group, if present.
func (m Manifest) Group(name string) (DependencyGroup, bool) {
	for _, group := range m.Groups {
		if group.Name == name {
			return group, true
		}
	}
	return DependencyGroup{}, false
}
