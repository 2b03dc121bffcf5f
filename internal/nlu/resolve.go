package nlu

import (
	"path/filepath"
	"strings"
)

// Resolver maps spoken fragments to canonical names, launch identifiers,
// process names and folder locations using the static tables.
type Resolver struct {
	aliases []string
	launch  map[string]string
	procs   map[string]string
	folders map[string]string
	home    string
}

func NewResolver(home string) *Resolver {
	return &Resolver{
		aliases: appAliases,
		launch:  launchIDs,
		procs:   processIDs,
		folders: folderDirs,
		home:    home,
	}
}

// App matches a fragment against the alias list. Containment is symmetric
// ("edge" hits "microsoft edge" and vice versa) and the first alias in
// table order wins. The more specific of the two strings comes back: the
// alias when it sits inside the fragment, otherwise the fragment itself,
// so App("chrome") == "chrome" and resolution is idempotent.
func (r *Resolver) App(fragment string) (string, bool) {
	for _, alias := range r.aliases {
		if strings.Contains(alias, fragment) || strings.Contains(fragment, alias) {
			if strings.Contains(fragment, alias) {
				return alias, true
			}
			return fragment, true
		}
	}
	return "", false
}

// LaunchID returns the launcher identifier for a resolved app name.
func (r *Resolver) LaunchID(name string) string {
	if id, ok := r.launch[name]; ok {
		return id
	}
	return name
}

// ProcessID returns the process name the terminator should match.
func (r *Resolver) ProcessID(name string) string {
	if id, ok := r.procs[name]; ok {
		return id
	}
	return name
}

// FolderPath turns a spoken folder name into a candidate path. Known names
// land under home, absolute paths pass through, anything else is tried
// under home. There is no closed set: the caller probes the result.
func (r *Resolver) FolderPath(name string) string {
	if sub, ok := r.folders[name]; ok {
		return filepath.Join(r.home, sub)
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.home, name)
}
