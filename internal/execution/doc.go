// Package execution runs a materialized project's toolchain commands and
// persists their output next to the project.
//
// Which phases run is derived from the project kind: executables are run,
// libraries are tested, and projects that are both get both phases. Process
// launching sits behind the Runner interface so batch code and tests can
// substitute their own implementation.
package execution
