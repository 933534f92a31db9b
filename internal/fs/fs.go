// Package fs holds the typed representations of the on-disk artifacts this
// tool consumes: a package's tsconfig.json and its package.json manifest.
// Nothing in here writes to disk.
package fs

// TsconfigFilename is the fixed name of a package's TypeScript project
// configuration file. The enumeration engine relies on this name when
// deriving a dependency package's configuration path from its manifest.
const TsconfigFilename = "tsconfig.json"

// PackageManifestFilename is the fixed name of a package's manifest file.
const PackageManifestFilename = "package.json"
