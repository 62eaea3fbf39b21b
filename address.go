package bollywood

import "regexp"

// validNamePattern matches the legal character set for a single path
// segment (an actor name): spec.md requires [A-Za-z0-9\-_.:%]+ and rejects
// anything starting with "$". Percent-encoded names are accepted literally;
// this engine never decodes them.
var validNamePattern = regexp.MustCompile(`^[A-Za-z0-9\-_.:%]+$`)

func validateActorName(name string) error {
	if name == "" {
		return &InvalidActorNameError{Name: name, Reason: "name must not be empty"}
	}
	if name[0] == '$' {
		return &InvalidActorNameError{Name: name, Reason: "name must not start with '$'"}
	}
	if !validNamePattern.MatchString(name) {
		return &InvalidActorNameError{Name: name, Reason: "name contains characters outside [A-Za-z0-9-_.:%]"}
	}
	return nil
}

// childPath joins a parent path and a child segment into a canonical path
// string, e.g. "bollywood://mySystem/user" + "worker-1" ->
// "bollywood://mySystem/user/worker-1".
func childPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
