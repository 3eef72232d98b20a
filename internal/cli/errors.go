package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type badArgError struct {
	flag string
	got  string
	want string
}

func (e badArgError) Error() string {
	return fmt.Sprintf("invalid %s: %q (expected %s)", e.flag, e.got, e.want)
}

func errBadArg(flag, got, want string) error {
	return badArgError{flag: flag, got: got, want: want}
}
