// Package preflight provides readiness checks for the filesystem paths and
// toolchains mdtree depends on.
//
// These checks run in two contexts:
//   - `mdtree doctor` renders RunAll and CheckToolchains as tables.
//   - `mdtree generate --execute` calls CheckToolchains before the batch and
//     warns about missing binaries, since every affected project would
//     otherwise fail its run or test phase one by one.
package preflight
