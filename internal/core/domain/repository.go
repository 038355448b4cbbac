package domain

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies one remote repository by owner and name.
type RepositoryRef struct {
	Owner string
	Name  string
}

// ParseRepositoryRef parses an "owner/name" string.
func ParseRepositoryRef(s string) (RepositoryRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepositoryRef{}, fmt.Errorf("%w: repository %q must be owner/name", ErrInvalidInput, s)
	}
	return RepositoryRef{Owner: owner, Name: name}, nil
}

// ParseRepositoryRefs parses a list of "owner/name" strings, preserving order.
func ParseRepositoryRefs(list []string) ([]RepositoryRef, error) {
	refs := make([]RepositoryRef, 0, len(list))
	for _, s := range list {
		ref, err := ParseRepositoryRef(s)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// String returns the "owner/name" form.
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// ShortName returns the repository name without its owner.
func (r RepositoryRef) ShortName() string {
	return r.Name
}

// IsZero returns true if the reference is unset.
func (r RepositoryRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}
