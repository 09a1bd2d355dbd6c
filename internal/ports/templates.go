package ports

import "mlscaffold/internal/types"

// TemplateSourcePort is the read-only template catalog: List enumerates
// every descriptor, Load returns the raw bytes for a logical path.
// The source performs no substitution.
type TemplateSourcePort interface {
	List() []types.TemplateDescriptor
	Load(logicalPath string) ([]byte, error)
}
