// Package version tracks the release version state of a project.
//
// A State holds the released version (Current), the staged but unreleased
// version (Next), and the previously staged version (Prev) so an in-flight
// release branch can be renamed when the staged version changes.
//
// Example usage:
//
//	state := &version.State{Current: "1.2.3"}
//	if err := state.Bump(version.Minor); err != nil {
//	    return err
//	}
//	fmt.Println(state.Next)         // "1.3.0"
//	fmt.Println(state.NextBranch()) // "release/1.3.0"
package version
