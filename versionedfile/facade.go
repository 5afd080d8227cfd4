package versionedfile

import "path"

// New dispatches on path's basename to the matching C2 adapter
// constructor (spec §4.3). dependency is ignored by adapters that don't
// support a dependency variant (go.mod, pom.xml, pubspec.yaml, gleam.toml,
// pyproject.toml).
// tags is only consulted by the go.mod adapter. Unknown basenames return
// ErrUnknownFile.
func New(filePath, content string, tags []string, dependency string) (Adapter, error) {
	switch path.Base(filePath) {
	case "Cargo.toml":
		return NewCargoToml(filePath, content, dependency)
	case "Cargo.lock":
		return NewCargoLock(filePath, content, dependency)
	case "gleam.toml":
		return NewGleamToml(filePath, content)
	case "go.mod":
		return NewGoMod(filePath, content, tags)
	case "package.json",
		"tauri.conf.json", "tauri.macos.conf.json", "tauri.windows.conf.json", "tauri.linux.conf.json":
		return NewPackageJSON(filePath, content, dependency)
	case "package-lock.json":
		return NewPackageLockJSON(filePath, content, dependency, nil)
	case "pom.xml":
		return NewMavenPom(filePath, content)
	case "pubspec.yaml":
		return NewPubspecYaml(filePath, content)
	case "pyproject.toml":
		return NewPyProjectToml(filePath, content)
	case "deno.lock":
		return NewDenoLock(filePath, content, dependency)
	default:
		return nil, &ErrUnknownFile{Path: filePath}
	}
}
