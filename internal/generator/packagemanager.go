package generator

import "fmt"

// PackageManager is the closed set of package managers projen accepts.
type PackageManager int

const (
	NPM PackageManager = iota
	Yarn
	PNPM
	Bun
)

// String returns the lowercase recipe-facing name.
func (pm PackageManager) String() string {
	switch pm {
	case Yarn:
		return "yarn"
	case PNPM:
		return "pnpm"
	case Bun:
		return "bun"
	default:
		return "npm"
	}
}

// ID returns projen's NodePackageManager enum member name, so the
// generated configuration references the enum rather than a free-form
// string downstream tooling cannot validate.
func (pm PackageManager) ID() string {
	switch pm {
	case Yarn:
		return "YARN"
	case PNPM:
		return "PNPM"
	case Bun:
		return "BUN"
	default:
		return "NPM"
	}
}

// ParsePackageManager resolves a package manager by name. Empty input
// defaults to npm; unknown names are an error.
func ParsePackageManager(name string) (PackageManager, error) {
	switch name {
	case "", "npm":
		return NPM, nil
	case "yarn":
		return Yarn, nil
	case "pnpm":
		return PNPM, nil
	case "bun":
		return Bun, nil
	default:
		return NPM, fmt.Errorf("unknown package manager %q (must be npm, yarn, pnpm, or bun)", name)
	}
}
