// Package manifest defines the declarative inputs of a build.
//
// A [Plan] names everything the builder consumes: the base runtime image,
// the working directory, the dependency manifest and install command, the
// source tree, the optional environment file, and the entrypoint recorded
// on the final image. Plans are YAML files, conventionally kiln.yaml at
// the project root.
//
// The requirements manifest is the ordered list of (package, constraint)
// declarations installed during the dependency phase. It is parsed only
// for early validation and reporting; resolving and installing packages
// is the install command's job.
//
// Example usage:
//
//	plan, err := manifest.LoadPlan("kiln.yaml")
//	if err != nil {
//	    return err
//	}
//
//	data, _ := os.ReadFile(plan.Dependencies.Manifest)
//	reqs, err := manifest.ParseRequirements(data)
//	if err != nil {
//	    return err
//	}
package manifest
