// Package image inspects exported OCI archives without a container
// runtime.
//
// Inspection is the read side of the build contract: given an archive
// produced by a build, it reports the startup metadata (entrypoint,
// working directory, environment) and the layer stack, and can check the
// flattened filesystem for the presence of specific files. It backs the
// inspect CLI command and the build's own verification tests.
package image
